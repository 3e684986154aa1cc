// Package display renders a confirmed order for the console.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"orderbot/internal/order"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const notAvailable = "N/A"

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", s)
	}
}

// Summary is the printable view of an order; absent prices read N/A.
type Summary struct {
	OrderID       string `json:"orderId" yaml:"order_id"`
	ClientOrderID string `json:"clientOrderId,omitempty" yaml:"client_order_id,omitempty"`
	Symbol        string `json:"symbol" yaml:"symbol"`
	Side          string `json:"side" yaml:"side"`
	Type          string `json:"type" yaml:"type"`
	Quantity      string `json:"quantity" yaml:"quantity"`
	Price         string `json:"price" yaml:"price"`
	StopPrice     string `json:"stopPrice" yaml:"stop_price"`
	Status        string `json:"status" yaml:"status"`
	Time          string `json:"time" yaml:"time"`
}

func NewSummary(o *order.PlacedOrder) Summary {
	if o == nil {
		return Summary{}
	}
	return Summary{
		OrderID:       o.OrderID,
		ClientOrderID: o.ClientOrderID,
		Symbol:        o.Symbol,
		Side:          o.Side,
		Type:          o.Type,
		Quantity:      o.Quantity,
		Price:         orNA(o.Price),
		StopPrice:     orNA(o.StopPrice),
		Status:        o.Status,
		Time:          formatTime(o.Time),
	}
}

func Render(w io.Writer, format Format, o *order.PlacedOrder) error {
	if o == nil {
		return fmt.Errorf("no order to render")
	}
	s := NewSummary(o)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, s)
	}
}

func renderText(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("\nOrder Details:\n")
	fmt.Fprintf(&b, "Order ID: %s\n", s.OrderID)
	fmt.Fprintf(&b, "Symbol: %s\n", s.Symbol)
	fmt.Fprintf(&b, "Side: %s\n", s.Side)
	fmt.Fprintf(&b, "Type: %s\n", s.Type)
	fmt.Fprintf(&b, "Quantity: %s\n", s.Quantity)
	fmt.Fprintf(&b, "Price: %s\n", s.Price)
	fmt.Fprintf(&b, "Stop Price: %s\n", s.StopPrice)
	fmt.Fprintf(&b, "Status: %s\n", s.Status)
	fmt.Fprintf(&b, "Time: %s\n", s.Time)
	_, err := io.WriteString(w, b.String())
	return err
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
