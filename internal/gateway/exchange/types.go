// Package exchange defines the venue-neutral contract between the order
// executor and a concrete exchange backend.
package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"orderbot/internal/order"

	"github.com/shopspring/decimal"
)

// TimeInForceGTC keeps a resting order active until filled or cancelled.
const TimeInForceGTC = "GTC"

// SymbolInfo is the subset of instrument metadata the client inspects.
type SymbolInfo struct {
	Symbol     string
	Status     string // e.g. TRADING, BREAK
	BaseAsset  string
	QuoteAsset string
}

// OrderParams is the flattened parameter set sent to the create-order call.
// Price and StopPrice are sent only when Valid.
type OrderParams struct {
	Symbol        string
	Side          order.Side
	Type          order.Type
	Quantity      decimal.Decimal
	Price         decimal.NullDecimal
	StopPrice     decimal.NullDecimal
	TimeInForce   string
	ClientOrderID string
}

// OrderPayload is an order as reported by the exchange.
type OrderPayload struct {
	OrderID       string
	ClientOrderID string
	Symbol        string
	Side          string
	Type          string
	OrigQty       string
	Price         string // "" when absent from the payload
	StopPrice     string // "" when absent from the payload
	Status        string
	Time          time.Time
	Raw           json.RawMessage
}

// APIError is a request the exchange explicitly refused.
type APIError struct {
	Code    int64
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("<APIError> code=%d, msg=%s", e.Code, e.Message)
}

// ToPlacedOrder converts the payload into the order package's result type.
func (p *OrderPayload) ToPlacedOrder() *order.PlacedOrder {
	if p == nil {
		return nil
	}
	return &order.PlacedOrder{
		OrderID:       p.OrderID,
		ClientOrderID: p.ClientOrderID,
		Symbol:        p.Symbol,
		Side:          p.Side,
		Type:          p.Type,
		Quantity:      p.OrigQty,
		Price:         p.Price,
		StopPrice:     p.StopPrice,
		Status:        p.Status,
		Time:          p.Time,
		Raw:           p.Raw,
	}
}
