// Package validator confirms a trading pair is listed before any order is
// attempted.
package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderbot/internal/gateway/exchange"
	"orderbot/internal/logger"
	"orderbot/internal/metrics"
)

// Status distinguishes why a symbol did not validate.
type Status int

const (
	StatusValid Status = iota
	// StatusNotFound: the exchange answered and does not list the symbol.
	StatusNotFound
	// StatusRejected: the exchange answered with an API error.
	StatusRejected
	// StatusUnreachable: no usable answer (transport failure, timeout).
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusNotFound:
		return "not_found"
	case StatusRejected:
		return "rejected"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one validation.
type Outcome struct {
	Symbol string
	Status Status
	Info   *exchange.SymbolInfo
	Err    error
}

func (o Outcome) Valid() bool {
	return o.Status == StatusValid
}

// Transient reports whether asking again could produce a different answer.
func (o Outcome) Transient() bool {
	return o.Status == StatusUnreachable
}

func (o Outcome) Error() string {
	switch o.Status {
	case StatusValid:
		return ""
	case StatusNotFound:
		return fmt.Sprintf("symbol %s is not listed", o.Symbol)
	default:
		return fmt.Sprintf("could not validate symbol %s (%s): %v", o.Symbol, o.Status, o.Err)
	}
}

type Validator struct {
	client  exchange.Client
	log     *logger.Logger
	metrics *metrics.Recorder
}

func New(client exchange.Client, log *logger.Logger, rec *metrics.Recorder) *Validator {
	if log == nil {
		log = logger.Nop()
	}
	return &Validator{client: client, log: log.With("component", "validator"), metrics: rec}
}

// Validate never returns an error: failures of the metadata call are folded
// into the Outcome. Exactly one log entry is written per call.
func (v *Validator) Validate(ctx context.Context, symbol string) Outcome {
	out := v.check(ctx, symbol)
	switch out.Status {
	case StatusValid:
		v.log.Infof("Symbol %s is valid", symbol)
	case StatusNotFound:
		v.log.Errorf("Invalid symbol: %s", symbol)
	default:
		v.log.Errorf("Error validating symbol %s (%s): %v", symbol, out.Status, out.Err)
	}
	v.metrics.Validation(out.Status.String())
	return out
}

func (v *Validator) check(ctx context.Context, symbol string) (out Outcome) {
	out = Outcome{Symbol: symbol}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Symbol: symbol, Status: StatusUnreachable, Err: fmt.Errorf("symbol lookup panic: %v", r)}
		}
	}()
	if v.client == nil {
		out.Status = StatusUnreachable
		out.Err = errors.New("exchange client not initialized")
		return out
	}
	start := time.Now()
	info, err := v.client.SymbolInfo(ctx, symbol)
	v.metrics.ObserveRequest("symbol_info", time.Since(start))
	if err != nil {
		var apiErr *exchange.APIError
		if errors.As(err, &apiErr) {
			out.Status = StatusRejected
		} else {
			out.Status = StatusUnreachable
		}
		out.Err = err
		return out
	}
	if info == nil || info.Symbol == "" {
		out.Status = StatusNotFound
		return out
	}
	out.Status = StatusValid
	out.Info = info
	return out
}
