// Package executor places validated order requests on the exchange and reads
// back their authoritative state.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderbot/internal/gateway/exchange"
	"orderbot/internal/logger"
	"orderbot/internal/metrics"
	"orderbot/internal/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultClientIDPrefix 与 32 位十六进制 uuid 拼接后不超过交易所 36 字符上限。
const DefaultClientIDPrefix = "ob-"

const maxClientOrderIDLen = 36

type Executor struct {
	client   exchange.Client
	log      *logger.Logger
	metrics  *metrics.Recorder
	idPrefix string
	newID    func() string
}

type Option func(*Executor)

// WithClientIDPrefix overrides the client order id prefix.
func WithClientIDPrefix(prefix string) Option {
	return func(e *Executor) {
		e.idPrefix = strings.TrimSpace(prefix)
	}
}

// WithIDGenerator replaces uuid generation, for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(e *Executor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func New(client exchange.Client, log *logger.Logger, rec *metrics.Recorder, opts ...Option) *Executor {
	if log == nil {
		log = logger.Nop()
	}
	e := &Executor{
		client:   client,
		log:      log.With("component", "executor"),
		metrics:  rec,
		idPrefix: DefaultClientIDPrefix,
		newID:    func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Place dispatches on the request variant.
func (e *Executor) Place(ctx context.Context, req order.Request) (*order.PlacedOrder, error) {
	switch r := req.(type) {
	case order.MarketRequest:
		return e.PlaceMarket(ctx, r)
	case order.LimitRequest:
		return e.PlaceLimit(ctx, r)
	case order.StopLimitRequest:
		return e.PlaceStopLimit(ctx, r)
	case nil:
		return nil, errors.New("nil order request")
	default:
		return nil, fmt.Errorf("unsupported order request %T", req)
	}
}

func (e *Executor) PlaceMarket(ctx context.Context, req order.MarketRequest) (*order.PlacedOrder, error) {
	return e.submit(ctx, "Market", exchange.OrderParams{
		Symbol:   req.Symbol(),
		Side:     req.Side(),
		Type:     order.TypeMarket,
		Quantity: req.Quantity(),
	})
}

func (e *Executor) PlaceLimit(ctx context.Context, req order.LimitRequest) (*order.PlacedOrder, error) {
	return e.submit(ctx, "Limit", exchange.OrderParams{
		Symbol:      req.Symbol(),
		Side:        req.Side(),
		Type:        order.TypeLimit,
		Quantity:    req.Quantity(),
		Price:       decimal.NewNullDecimal(req.Price),
		TimeInForce: exchange.TimeInForceGTC,
	})
}

func (e *Executor) PlaceStopLimit(ctx context.Context, req order.StopLimitRequest) (*order.PlacedOrder, error) {
	return e.submit(ctx, "Stop-Limit", exchange.OrderParams{
		Symbol:      req.Symbol(),
		Side:        req.Side(),
		Type:        order.TypeStopLimit,
		Quantity:    req.Quantity(),
		Price:       decimal.NewNullDecimal(req.LimitPrice),
		StopPrice:   decimal.NewNullDecimal(req.StopPrice),
		TimeInForce: exchange.TimeInForceGTC,
	})
}

// FetchDetails re-reads an order; the create response may predate settlement.
func (e *Executor) FetchDetails(ctx context.Context, symbol, orderID string) (*order.PlacedOrder, error) {
	if e.client == nil {
		return nil, errors.New("exchange client not initialized")
	}
	start := time.Now()
	payload, err := e.client.GetOrder(ctx, symbol, orderID)
	e.metrics.ObserveRequest("get_order", time.Since(start))
	if err != nil {
		e.log.Errorf("Error fetching order details: %v", err)
		return nil, wrapRemote("fetch order details", err)
	}
	if payload == nil {
		e.log.Errorf("Error fetching order details: empty payload for order %s", orderID)
		return nil, fmt.Errorf("fetch order details: empty payload for order %s", orderID)
	}
	e.log.Infof("Fetched order details: %s", string(payload.Raw))
	return payload.ToPlacedOrder(), nil
}

func (e *Executor) submit(ctx context.Context, label string, params exchange.OrderParams) (*order.PlacedOrder, error) {
	if e.client == nil {
		return nil, errors.New("exchange client not initialized")
	}
	params.ClientOrderID = e.clientOrderID()
	op := "place " + strings.ToLower(label) + " order"

	start := time.Now()
	payload, err := e.client.CreateOrder(ctx, params)
	e.metrics.ObserveRequest("create_order", time.Since(start))
	if err != nil {
		e.log.Errorf("Error placing %s order: %v", strings.ToLower(label), err)
		e.metrics.Order(string(params.Type), string(params.Side), "rejected")
		return nil, wrapRemote(op, err)
	}
	if payload == nil || payload.OrderID == "" {
		e.log.Errorf("Error placing %s order: exchange returned no order id", strings.ToLower(label))
		e.metrics.Order(string(params.Type), string(params.Side), "failed")
		return nil, fmt.Errorf("%s: exchange returned no order id", op)
	}
	e.log.Infof("%s order placed: %s", label, string(payload.Raw))
	e.metrics.Order(string(params.Type), string(params.Side), "placed")
	return payload.ToPlacedOrder(), nil
}

func (e *Executor) clientOrderID() string {
	id := e.idPrefix + e.newID()
	if len(id) > maxClientOrderIDLen {
		id = id[:maxClientOrderIDLen]
	}
	return id
}

// wrapRemote 将交易所拒绝转换为 RejectionError，其余错误保持原因链。
func wrapRemote(op string, err error) error {
	var apiErr *exchange.APIError
	if errors.As(err, &apiErr) {
		return &order.RejectionError{Op: op, Code: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
