package binance

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"orderbot/internal/gateway/exchange"
	"orderbot/internal/order"

	"github.com/adshao/go-binance/v2/futures"
)

type futuresClient struct {
	cfg    Config
	client *futures.Client
}

func newFuturesClient(cfg Config, httpClient *http.Client) *futuresClient {
	futures.UseTestnet = cfg.Testnet
	client := futures.NewClient(cfg.APIKey, cfg.APISecret)
	if cfg.RESTBaseURL != "" {
		client.BaseURL = cfg.RESTBaseURL
	}
	client.HTTPClient = httpClient
	return &futuresClient{cfg: cfg, client: client}
}

func (c *futuresClient) Name() string {
	if c.cfg.Testnet {
		return "binance-futures-testnet"
	}
	return "binance-futures"
}

// SymbolInfo 合约 exchangeInfo 不支持按 symbol 过滤，需在本地查找。
func (c *futuresClient) SymbolInfo(ctx context.Context, symbol string) (*exchange.SymbolInfo, error) {
	info, err := c.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	if info == nil {
		return nil, nil
	}
	for _, s := range info.Symbols {
		if strings.EqualFold(s.Symbol, symbol) {
			return &exchange.SymbolInfo{
				Symbol:     s.Symbol,
				Status:     s.Status,
				BaseAsset:  s.BaseAsset,
				QuoteAsset: s.QuoteAsset,
			}, nil
		}
	}
	return nil, nil
}

func (c *futuresClient) CreateOrder(ctx context.Context, params exchange.OrderParams) (*exchange.OrderPayload, error) {
	orderType, err := futuresOrderType(params.Type)
	if err != nil {
		return nil, err
	}
	svc := c.client.NewCreateOrderService().
		Symbol(params.Symbol).
		Side(futures.SideType(params.Side)).
		Type(orderType).
		Quantity(params.Quantity.String())
	if params.TimeInForce != "" {
		svc = svc.TimeInForce(futures.TimeInForceType(params.TimeInForce))
	}
	if params.Price.Valid {
		svc = svc.Price(params.Price.Decimal.String())
	}
	if params.StopPrice.Valid {
		svc = svc.StopPrice(params.StopPrice.Decimal.String())
	}
	if params.ClientOrderID != "" {
		svc = svc.NewClientOrderID(params.ClientOrderID)
	}
	res, err := svc.Do(ctx, c.options()...)
	if err != nil {
		return nil, convertError(err)
	}
	return decodePayload(res)
}

func (c *futuresClient) GetOrder(ctx context.Context, symbol, orderID string) (*exchange.OrderPayload, error) {
	id, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	res, err := c.client.NewGetOrderService().Symbol(symbol).OrderID(id).Do(ctx, c.options()...)
	if err != nil {
		return nil, convertError(err)
	}
	return decodePayload(res)
}

func (c *futuresClient) options() []futures.RequestOption {
	if c.cfg.RecvWindow <= 0 {
		return nil
	}
	return []futures.RequestOption{futures.WithRecvWindow(c.cfg.RecvWindow.Milliseconds())}
}

// futuresOrderType 合约止损限价单类型为 STOP（需同时带 price 与 stopPrice）。
func futuresOrderType(t order.Type) (futures.OrderType, error) {
	switch t {
	case order.TypeMarket:
		return futures.OrderTypeMarket, nil
	case order.TypeLimit:
		return futures.OrderTypeLimit, nil
	case order.TypeStopLimit:
		return futures.OrderTypeStop, nil
	default:
		return "", fmt.Errorf("unsupported futures order type %q", t)
	}
}
