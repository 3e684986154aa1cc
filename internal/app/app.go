package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderbot/internal/config"
	"orderbot/internal/executor"
	"orderbot/internal/gateway/exchange"
	"orderbot/internal/logger"
	"orderbot/internal/metrics"
	"orderbot/internal/order"
	"orderbot/internal/pkg/symbol"
	"orderbot/internal/validator"
)

// Stage 表示一次下单流程到达的阶段。
type Stage int

const (
	StageUnvalidated Stage = iota
	StageValidated
	StageSubmitted
	StageConfirmed
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageUnvalidated:
		return "unvalidated"
	case StageValidated:
		return "validated"
	case StageSubmitted:
		return "submitted"
	case StageConfirmed:
		return "confirmed"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// InvalidSymbolError is returned when the symbol check does not pass.
type InvalidSymbolError struct {
	Outcome validator.Outcome
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %s: %s", e.Outcome.Symbol, e.Outcome.Error())
}

func (e *InvalidSymbolError) Unwrap() error {
	return e.Outcome.Err
}

// App 负责一次下单的编排：构造请求→校验交易对→下单→回查订单详情。
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	metrics   *metrics.Recorder
	validator *validator.Validator
	executor  *executor.Executor

	stage Stage
	// failedAt 记录失败前到达的阶段。
	failedAt Stage
}

func newApp(cfg *config.Config, client exchange.Client, log *logger.Logger, rec *metrics.Recorder, v *validator.Validator, e *executor.Executor) *App {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{cfg: cfg, log: log, metrics: rec, validator: v, executor: e}
	venue := "none"
	if client != nil {
		venue = client.Name()
	}
	testnet := false
	if cfg != nil {
		testnet = cfg.Exchange.Testnet
	}
	log.Infof("Bot initialized with Testnet=%t exchange=%s", testnet, venue)
	return a
}

// Stage reports how far the last Run got.
func (a *App) Stage() Stage {
	if a == nil {
		return StageUnvalidated
	}
	return a.stage
}

// FailedAt reports the last stage reached before a failure.
func (a *App) FailedAt() Stage {
	if a == nil {
		return StageUnvalidated
	}
	return a.failedAt
}

// Run places one order described by p and returns its confirmed details.
// Requests missing a required field fail before any exchange call.
func (a *App) Run(ctx context.Context, p order.Params) (*order.PlacedOrder, error) {
	if a == nil || a.validator == nil || a.executor == nil {
		return nil, errors.New("app not initialized")
	}
	a.stage = StageUnvalidated

	if raw := strings.TrimSpace(p.Symbol); raw != "" && !symbol.IsValid(raw) {
		a.log.Debugf("Symbol %s has no known quote asset, sending it unchanged", raw)
	}
	p.Symbol = symbol.ToBinance(p.Symbol)
	if p.Symbol == "" && a.cfg != nil {
		p.Symbol = a.cfg.Order.DefaultSymbol
	}
	req, err := order.NewRequest(p)
	if err != nil {
		a.log.Errorf("Rejected order input: %v", err)
		return nil, a.fail(err)
	}
	if ignored := p.IgnoredFields(); len(ignored) > 0 {
		a.log.Warnf("Ignoring %s for %s order", strings.Join(ignored, ", "), req.Type().Label())
	}

	outcome := a.validator.Validate(ctx, req.Symbol())
	if !outcome.Valid() {
		return nil, a.fail(&InvalidSymbolError{Outcome: outcome})
	}
	a.stage = StageValidated

	placed, err := a.executor.Place(ctx, req)
	if err != nil {
		return nil, a.fail(err)
	}
	a.stage = StageSubmitted

	details, err := a.executor.FetchDetails(ctx, req.Symbol(), placed.OrderID)
	if err != nil {
		a.log.Warnf("Order %s was placed but its details could not be fetched", placed.OrderID)
		return nil, a.fail(err)
	}
	a.stage = StageConfirmed
	return details, nil
}

func (a *App) fail(err error) error {
	a.failedAt = a.stage
	a.stage = StageFailed
	return err
}
