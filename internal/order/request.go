package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Params is the raw, not yet checked user intent.
type Params struct {
	Symbol    string
	Side      Side
	Type      Type
	Quantity  decimal.Decimal
	Price     decimal.NullDecimal
	StopPrice decimal.NullDecimal
}

// Request is implemented by exactly one variant per order type; each variant
// carries only the fields its type requires.
type Request interface {
	Type() Type
	Symbol() string
	Side() Side
	Quantity() decimal.Decimal
}

type base struct {
	symbol   string
	side     Side
	quantity decimal.Decimal
}

func (b base) Symbol() string            { return b.symbol }
func (b base) Side() Side                { return b.side }
func (b base) Quantity() decimal.Decimal { return b.quantity }

type MarketRequest struct {
	base
}

func (MarketRequest) Type() Type { return TypeMarket }

type LimitRequest struct {
	base
	Price decimal.Decimal
}

func (LimitRequest) Type() Type { return TypeLimit }

// StopLimitRequest becomes a limit order at LimitPrice once StopPrice trades.
type StopLimitRequest struct {
	base
	StopPrice  decimal.Decimal
	LimitPrice decimal.Decimal
}

func (StopLimitRequest) Type() Type { return TypeStopLimit }

func NewMarket(symbol string, side Side, qty decimal.Decimal) MarketRequest {
	return MarketRequest{base: base{symbol: symbol, side: side, quantity: qty}}
}

func NewLimit(symbol string, side Side, qty, price decimal.Decimal) LimitRequest {
	return LimitRequest{base: base{symbol: symbol, side: side, quantity: qty}, Price: price}
}

func NewStopLimit(symbol string, side Side, qty, stopPrice, limitPrice decimal.Decimal) StopLimitRequest {
	return StopLimitRequest{
		base:       base{symbol: symbol, side: side, quantity: qty},
		StopPrice:  stopPrice,
		LimitPrice: limitPrice,
	}
}

// NewRequest checks p against the fields its type requires and returns the
// matching variant. Fields a type does not use are dropped.
func NewRequest(p Params) (Request, error) {
	symbol := strings.ToUpper(strings.TrimSpace(p.Symbol))
	if symbol == "" {
		return nil, &InvalidError{Field: "symbol", Reason: "is required"}
	}
	side, err := ParseSide(string(p.Side))
	if err != nil {
		return nil, &InvalidError{Field: "side", Reason: err.Error()}
	}
	if !p.Quantity.IsPositive() {
		return nil, &InvalidError{Field: "quantity", Reason: "must be positive"}
	}
	typ, err := ParseType(string(p.Type))
	if err != nil {
		return nil, &InvalidError{Field: "order-type", Reason: err.Error()}
	}

	var missing []string
	switch typ {
	case TypeLimit:
		if !p.Price.Valid {
			missing = append(missing, "price")
		}
	case TypeStopLimit:
		if !p.Price.Valid {
			missing = append(missing, "price")
		}
		if !p.StopPrice.Valid {
			missing = append(missing, "stop-price")
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteError{Type: typ, Missing: missing}
	}
	if typ != TypeMarket && !p.Price.Decimal.IsPositive() {
		return nil, &InvalidError{Field: "price", Reason: "must be positive"}
	}
	if typ == TypeStopLimit && !p.StopPrice.Decimal.IsPositive() {
		return nil, &InvalidError{Field: "stop-price", Reason: "must be positive"}
	}

	switch typ {
	case TypeLimit:
		return NewLimit(symbol, side, p.Quantity, p.Price.Decimal), nil
	case TypeStopLimit:
		return NewStopLimit(symbol, side, p.Quantity, p.StopPrice.Decimal, p.Price.Decimal), nil
	default:
		return NewMarket(symbol, side, p.Quantity), nil
	}
}

// IgnoredFields lists supplied parameters the order type will not send.
func (p Params) IgnoredFields() []string {
	var out []string
	switch p.Type {
	case TypeMarket:
		if p.Price.Valid {
			out = append(out, "price")
		}
		if p.StopPrice.Valid {
			out = append(out, "stop-price")
		}
	case TypeLimit:
		if p.StopPrice.Valid {
			out = append(out, "stop-price")
		}
	}
	return out
}
