package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func some(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func TestNewRequestBuildsVariants(t *testing.T) {
	t.Run("market drops prices", func(t *testing.T) {
		req, err := NewRequest(Params{Symbol: "btcusdt", Side: SideBuy, Type: TypeMarket, Quantity: dec("0.01"), Price: some("30000")})
		require.NoError(t, err)
		m, ok := req.(MarketRequest)
		require.True(t, ok)
		assert.Equal(t, "BTCUSDT", m.Symbol())
		assert.Equal(t, TypeMarket, m.Type())
		assert.True(t, dec("0.01").Equal(m.Quantity()))
	})

	t.Run("limit", func(t *testing.T) {
		req, err := NewRequest(Params{Symbol: "ETHUSDT", Side: SideSell, Type: TypeLimit, Quantity: dec("1"), Price: some("2500.5")})
		require.NoError(t, err)
		l, ok := req.(LimitRequest)
		require.True(t, ok)
		assert.Equal(t, SideSell, l.Side())
		assert.Equal(t, "2500.5", l.Price.String())
	})

	t.Run("stop-limit keeps stop and limit apart", func(t *testing.T) {
		req, err := NewRequest(Params{Symbol: "BTCUSDT", Side: SideBuy, Type: TypeStopLimit, Quantity: dec("0.01"), Price: some("30000"), StopPrice: some("29500")})
		require.NoError(t, err)
		sl, ok := req.(StopLimitRequest)
		require.True(t, ok)
		assert.Equal(t, "29500", sl.StopPrice.String())
		assert.Equal(t, "30000", sl.LimitPrice.String())
	})
}

func TestNewRequestRejectsIncomplete(t *testing.T) {
	cases := []struct {
		name    string
		params  Params
		missing []string
		msg     string
	}{
		{
			name:    "limit without price",
			params:  Params{Symbol: "BTCUSDT", Side: SideBuy, Type: TypeLimit, Quantity: dec("1")},
			missing: []string{"price"},
			msg:     "price is required for limit orders",
		},
		{
			name:    "stop-limit without both",
			params:  Params{Symbol: "BTCUSDT", Side: SideBuy, Type: TypeStopLimit, Quantity: dec("1")},
			missing: []string{"price", "stop-price"},
			msg:     "both price and stop-price are required for stop-limit orders",
		},
		{
			name:    "stop-limit without stop",
			params:  Params{Symbol: "BTCUSDT", Side: SideBuy, Type: TypeStopLimit, Quantity: dec("1"), Price: some("10")},
			missing: []string{"stop-price"},
			msg:     "stop-price is required for stop-limit orders",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRequest(tc.params)
			var incomplete *IncompleteError
			require.True(t, errors.As(err, &incomplete))
			assert.Equal(t, tc.missing, incomplete.Missing)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestNewRequestRejectsInvalidValues(t *testing.T) {
	cases := map[string]Params{
		"empty symbol":       {Side: SideBuy, Type: TypeMarket, Quantity: dec("1")},
		"zero quantity":      {Symbol: "BTCUSDT", Side: SideBuy, Type: TypeMarket, Quantity: decimal.Zero},
		"negative price":     {Symbol: "BTCUSDT", Side: SideBuy, Type: TypeLimit, Quantity: dec("1"), Price: some("-1")},
		"zero stop price":    {Symbol: "BTCUSDT", Side: SideBuy, Type: TypeStopLimit, Quantity: dec("1"), Price: some("1"), StopPrice: some("0")},
		"unknown side":       {Symbol: "BTCUSDT", Side: "HOLD", Type: TypeMarket, Quantity: dec("1")},
		"unknown order type": {Symbol: "BTCUSDT", Side: SideBuy, Type: "OCO", Quantity: dec("1")},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRequest(p)
			var invalid *InvalidError
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"market": TypeMarket, "LIMIT": TypeLimit, "stop-limit": TypeStopLimit, "Stop_Limit": TypeStopLimit} {
		got, err := ParseType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseType("stop")
	assert.Error(t, err)
	assert.Equal(t, "stop-limit", TypeStopLimit.Label())
}

func TestIgnoredFields(t *testing.T) {
	p := Params{Type: TypeMarket, Price: some("1"), StopPrice: some("2")}
	assert.Equal(t, []string{"price", "stop-price"}, p.IgnoredFields())
	p = Params{Type: TypeLimit, Price: some("1"), StopPrice: some("2")}
	assert.Equal(t, []string{"stop-price"}, p.IgnoredFields())
	p = Params{Type: TypeStopLimit, Price: some("1"), StopPrice: some("2")}
	assert.Empty(t, p.IgnoredFields())
}

func TestRejectionErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &RejectionError{Op: "place limit order", Code: -2010, Message: "Account has insufficient balance", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "code=-2010")
}
