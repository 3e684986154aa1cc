package binance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"orderbot/internal/gateway/exchange"
	"orderbot/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Form   url.Values
}

type fakeVenue struct {
	mu       sync.Mutex
	requests []recorded
	handle   func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeVenue) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu.Lock()
	f.requests = append(f.requests, recorded{Method: r.Method, Path: r.URL.Path, Form: r.Form})
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	f.handle(w, r)
}

func (f *fakeVenue) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeVenue) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t *testing.T, market string, handle func(w http.ResponseWriter, r *http.Request)) (exchange.Client, *fakeVenue) {
	t.Helper()
	venue := &fakeVenue{handle: handle}
	srv := httptest.NewServer(venue)
	t.Cleanup(srv.Close)
	client, err := New(Config{
		Market:      market,
		APIKey:      "key",
		APISecret:   "secret",
		Testnet:     true,
		RESTBaseURL: srv.URL,
		HTTPTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client, venue
}

func writeAPIError(w http.ResponseWriter, code int64, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = fmt.Fprintf(w, `{"code":%d,"msg":%q}`, code, msg)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Market: MarketSpot})
	assert.Error(t, err)

	_, err = New(Config{Market: "options", APIKey: "k", APISecret: "s"})
	assert.ErrorContains(t, err, "unsupported binance market")

	_, err = New(Config{APIKey: "k", APISecret: "s", ProxyEnabled: true, RESTProxyURL: "://bad"})
	assert.ErrorContains(t, err, "invalid REST proxy url")
}

func TestSpotSymbolInfo(t *testing.T) {
	client, venue := newTestClient(t, MarketSpot, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "BTCUSDT":
			_, _ = w.Write([]byte(`{"timezone":"UTC","serverTime":1700000000000,"symbols":[{"symbol":"BTCUSDT","status":"TRADING","baseAsset":"BTC","quoteAsset":"USDT"}]}`))
		case "FAKEUSD":
			writeAPIError(w, -1121, "Invalid symbol.")
		default:
			writeAPIError(w, -1003, "Too many requests.")
		}
	})
	ctx := context.Background()

	info, err := client.SymbolInfo(ctx, "BTCUSDT")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "TRADING", info.Status)
	assert.Equal(t, "BTC", info.BaseAsset)
	assert.Equal(t, "/api/v3/exchangeInfo", venue.last().Path)

	info, err = client.SymbolInfo(ctx, "FAKEUSD")
	assert.NoError(t, err)
	assert.Nil(t, info)

	_, err = client.SymbolInfo(ctx, "ETHUSDT")
	var apiErr *exchange.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, int64(-1003), apiErr.Code)
}

func TestSpotMarketOrderSendsNoPrice(t *testing.T) {
	client, venue := newTestClient(t, MarketSpot, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","orderId":28,"clientOrderId":"ob-1","transactTime":1700000000123,"price":"0.00000000","origQty":"0.01000000","executedQty":"0.01000000","status":"FILLED","timeInForce":"GTC","type":"MARKET","side":"BUY"}`))
	})

	payload, err := client.CreateOrder(context.Background(), exchange.OrderParams{
		Symbol:        "BTCUSDT",
		Side:          order.SideBuy,
		Type:          order.TypeMarket,
		Quantity:      decimal.RequireFromString("0.01"),
		ClientOrderID: "ob-1",
	})
	require.NoError(t, err)

	req := venue.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v3/order", req.Path)
	assert.Equal(t, "MARKET", req.Form.Get("type"))
	assert.Equal(t, "BUY", req.Form.Get("side"))
	assert.Equal(t, "0.01", req.Form.Get("quantity"))
	assert.Equal(t, "ob-1", req.Form.Get("newClientOrderId"))
	assert.False(t, req.Form.Has("price"))
	assert.False(t, req.Form.Has("stopPrice"))
	assert.False(t, req.Form.Has("timeInForce"))

	assert.Equal(t, "28", payload.OrderID)
	assert.Equal(t, "FILLED", payload.Status)
	assert.Equal(t, "0.01000000", payload.OrigQty)
	assert.Equal(t, "", payload.StopPrice)
	assert.Equal(t, int64(1700000000123), payload.Time.UnixMilli())
	assert.NotEmpty(t, payload.Raw)
}

func TestSpotStopLimitOrder(t *testing.T) {
	client, venue := newTestClient(t, MarketSpot, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","orderId":29,"transactTime":1700000000000,"price":"30000.00000000","origQty":"0.01000000","status":"NEW","type":"STOP_LOSS_LIMIT","side":"BUY"}`))
	})

	_, err := client.CreateOrder(context.Background(), exchange.OrderParams{
		Symbol:      "BTCUSDT",
		Side:        order.SideBuy,
		Type:        order.TypeStopLimit,
		Quantity:    decimal.RequireFromString("0.01"),
		Price:       decimal.NewNullDecimal(decimal.RequireFromString("30000")),
		StopPrice:   decimal.NewNullDecimal(decimal.RequireFromString("29500")),
		TimeInForce: exchange.TimeInForceGTC,
	})
	require.NoError(t, err)

	req := venue.last()
	assert.Equal(t, "STOP_LOSS_LIMIT", req.Form.Get("type"))
	assert.Equal(t, "30000", req.Form.Get("price"))
	assert.Equal(t, "29500", req.Form.Get("stopPrice"))
	assert.Equal(t, "GTC", req.Form.Get("timeInForce"))
}

func TestSpotCreateOrderRejection(t *testing.T) {
	client, _ := newTestClient(t, MarketSpot, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, -2010, "Account has insufficient balance for requested action.")
	})

	_, err := client.CreateOrder(context.Background(), exchange.OrderParams{
		Symbol:      "BTCUSDT",
		Side:        order.SideBuy,
		Type:        order.TypeLimit,
		Quantity:    decimal.RequireFromString("1"),
		Price:       decimal.NewNullDecimal(decimal.RequireFromString("30000")),
		TimeInForce: exchange.TimeInForceGTC,
	})
	var apiErr *exchange.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, int64(-2010), apiErr.Code)
	assert.Contains(t, apiErr.Message, "insufficient balance")
}

func TestSpotGetOrder(t *testing.T) {
	client, venue := newTestClient(t, MarketSpot, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","orderId":28,"clientOrderId":"ob-1","price":"0.00000000","origQty":"0.01000000","status":"FILLED","type":"MARKET","side":"BUY","stopPrice":"0.00000000","time":1700000000456,"updateTime":1700000000789}`))
	})

	payload, err := client.GetOrder(context.Background(), "BTCUSDT", "28")
	require.NoError(t, err)

	req := venue.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "28", req.Form.Get("orderId"))
	assert.Equal(t, "0.00000000", payload.StopPrice)
	assert.Equal(t, int64(1700000000456), payload.Time.UnixMilli())

	_, err = client.GetOrder(context.Background(), "BTCUSDT", "not-a-number")
	assert.ErrorContains(t, err, "invalid binance order id")
	assert.Equal(t, 1, venue.count())
}

func TestFuturesStopLimitUsesStopType(t *testing.T) {
	client, venue := newTestClient(t, MarketFutures, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fapi/v1/exchangeInfo" {
			_, _ = w.Write([]byte(`{"symbols":[{"symbol":"BTCUSDT","status":"TRADING","baseAsset":"BTC","quoteAsset":"USDT"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"orderId":77,"symbol":"BTCUSDT","status":"NEW","clientOrderId":"ob-2","price":"30000","origQty":"0.01","stopPrice":"29500","type":"STOP","side":"BUY","updateTime":1700000000999}`))
	})
	ctx := context.Background()

	info, err := client.SymbolInfo(ctx, "btcusdt")
	require.NoError(t, err)
	require.NotNil(t, info)
	missing, err := client.SymbolInfo(ctx, "FAKEUSD")
	require.NoError(t, err)
	assert.Nil(t, missing)

	payload, err := client.CreateOrder(ctx, exchange.OrderParams{
		Symbol:      "BTCUSDT",
		Side:        order.SideBuy,
		Type:        order.TypeStopLimit,
		Quantity:    decimal.RequireFromString("0.01"),
		Price:       decimal.NewNullDecimal(decimal.RequireFromString("30000")),
		StopPrice:   decimal.NewNullDecimal(decimal.RequireFromString("29500")),
		TimeInForce: exchange.TimeInForceGTC,
	})
	require.NoError(t, err)

	req := venue.last()
	assert.Equal(t, "/fapi/v1/order", req.Path)
	assert.Equal(t, "STOP", req.Form.Get("type"))
	assert.Equal(t, "29500", req.Form.Get("stopPrice"))
	assert.Equal(t, "77", payload.OrderID)
	assert.Equal(t, "29500", payload.StopPrice)
	assert.Equal(t, "binance-futures-testnet", client.Name())
}
