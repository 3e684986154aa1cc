// Package binance implements exchange.Client on top of the go-binance SDK,
// for both the spot and the USDⓈ-M futures APIs.
package binance

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"orderbot/internal/gateway/exchange"

	"github.com/adshao/go-binance/v2/common"
	"github.com/tidwall/gjson"
)

// codeInvalidSymbol is returned by the spot API for unknown symbols.
const codeInvalidSymbol = -1121

// New 根据 Market 选择现货或合约客户端。
func New(cfg Config) (exchange.Client, error) {
	final := cfg.withDefaults()
	if final.APIKey == "" || final.APISecret == "" {
		return nil, fmt.Errorf("binance api key and secret are required")
	}
	httpClient, err := newHTTPClient(final)
	if err != nil {
		return nil, err
	}
	switch final.Market {
	case MarketSpot:
		return newSpotClient(final, httpClient), nil
	case MarketFutures:
		return newFuturesClient(final, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported binance market %q (want spot or futures)", final.Market)
	}
}

func newHTTPClient(cfg Config) (*http.Client, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	if cfg.ProxyEnabled && cfg.RESTProxyURL != "" {
		proxyURL, err := url.Parse(cfg.RESTProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REST proxy url: %w", err)
		}
		baseTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok || baseTransport == nil {
			return nil, fmt.Errorf("http DefaultTransport is not *http.Transport")
		}
		transport := baseTransport.Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		httpClient.Transport = transport
	}
	return httpClient, nil
}

// convertError maps SDK API errors onto exchange.APIError and leaves
// transport errors untouched.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return &exchange.APIError{Code: apiErr.Code, Message: apiErr.Message}
	}
	return err
}

func isInvalidSymbol(err error) bool {
	var apiErr *exchange.APIError
	return errors.As(err, &apiErr) && apiErr.Code == codeInvalidSymbol
}

func parseOrderID(orderID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(orderID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid binance order id %q: %w", orderID, err)
	}
	return id, nil
}

// decodePayload reads the four SDK order response shapes through their JSON
// form, so spot/futures and create/get responses share one mapping.
func decodePayload(v any) (*exchange.OrderPayload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode order payload: %w", err)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("unexpected order payload: %s", string(raw))
	}
	return &exchange.OrderPayload{
		OrderID:       doc.Get("orderId").String(),
		ClientOrderID: doc.Get("clientOrderId").String(),
		Symbol:        doc.Get("symbol").String(),
		Side:          doc.Get("side").String(),
		Type:          doc.Get("type").String(),
		OrigQty:       doc.Get("origQty").String(),
		Price:         optionalField(doc, "price"),
		StopPrice:     optionalField(doc, "stopPrice"),
		Status:        doc.Get("status").String(),
		Time:          firstMillis(doc, "time", "transactTime", "updateTime"),
		Raw:           raw,
	}, nil
}

func optionalField(doc gjson.Result, key string) string {
	res := doc.Get(key)
	if !res.Exists() {
		return ""
	}
	return res.String()
}

func firstMillis(doc gjson.Result, keys ...string) time.Time {
	for _, key := range keys {
		if ms := doc.Get(key).Int(); ms > 0 {
			return time.UnixMilli(ms)
		}
	}
	return time.Time{}
}
