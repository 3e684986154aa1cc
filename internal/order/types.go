// Package order defines the order intent submitted by the CLI and the
// exchange-confirmed result returned to it.
package order

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", fmt.Errorf("invalid side %q (want BUY or SELL)", s)
	}
}

// Type discriminates the three supported order kinds.
type Type string

const (
	TypeMarket    Type = "MARKET"
	TypeLimit     Type = "LIMIT"
	TypeStopLimit Type = "STOP_LIMIT"
)

// ParseType accepts the CLI spellings (market, limit, stop-limit) in any case.
func ParseType(s string) (Type, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch Type(norm) {
	case TypeMarket:
		return TypeMarket, nil
	case TypeLimit:
		return TypeLimit, nil
	case TypeStopLimit:
		return TypeStopLimit, nil
	default:
		return "", fmt.Errorf("invalid order type %q (want market, limit or stop-limit)", s)
	}
}

// Label 返回面向用户的小写名称（market/limit/stop-limit）。
func (t Type) Label() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), "_", "-")
}

// PlacedOrder is the exchange's view of a submitted order.
// Price and StopPrice are empty when the exchange payload omits them.
type PlacedOrder struct {
	OrderID       string
	ClientOrderID string
	Symbol        string
	Side          string
	Type          string
	Quantity      string
	Price         string
	StopPrice     string
	Status        string
	Time          time.Time
	Raw           json.RawMessage
}
