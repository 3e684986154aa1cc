package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// A request is only ever built when every field its type requires is present.

func genNullPrice(t *rapid.T, label string) decimal.NullDecimal {
	if !rapid.Bool().Draw(t, label+"_set") {
		return decimal.NullDecimal{}
	}
	cents := rapid.Int64Range(1, 10_000_000_00).Draw(t, label)
	return decimal.NewNullDecimal(decimal.New(cents, -2))
}

func TestProperty_RequestCarriesRequiredFields(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		typ := rapid.SampledFrom([]Type{TypeMarket, TypeLimit, TypeStopLimit}).Draw(t, "type")
		side := rapid.SampledFrom([]Side{SideBuy, SideSell}).Draw(t, "side")
		qty := decimal.New(rapid.Int64Range(1, 1_000_000).Draw(t, "qty"), -4)
		price := genNullPrice(t, "price")
		stop := genNullPrice(t, "stop")

		req, err := NewRequest(Params{Symbol: "BTCUSDT", Side: side, Type: typ, Quantity: qty, Price: price, StopPrice: stop})

		needPrice := typ == TypeLimit || typ == TypeStopLimit
		needStop := typ == TypeStopLimit
		complete := (!needPrice || price.Valid) && (!needStop || stop.Valid)

		if !complete {
			var incomplete *IncompleteError
			if !errors.As(err, &incomplete) {
				t.Fatalf("incomplete %s request accepted: err=%v", typ, err)
			}
			if req != nil {
				t.Fatalf("incomplete request returned a value")
			}
			return
		}
		if err != nil {
			t.Fatalf("complete %s request rejected: %v", typ, err)
		}
		if req.Type() != typ {
			t.Fatalf("variant type %s, want %s", req.Type(), typ)
		}
		switch v := req.(type) {
		case LimitRequest:
			if !v.Price.Equal(price.Decimal) {
				t.Fatalf("limit price %s, want %s", v.Price, price.Decimal)
			}
		case StopLimitRequest:
			if !v.StopPrice.Equal(stop.Decimal) || !v.LimitPrice.Equal(price.Decimal) {
				t.Fatalf("stop-limit prices %s/%s, want %s/%s", v.StopPrice, v.LimitPrice, stop.Decimal, price.Decimal)
			}
		case MarketRequest:
		default:
			t.Fatalf("unexpected variant %T", req)
		}
	})
}
