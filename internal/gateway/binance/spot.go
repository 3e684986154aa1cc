package binance

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"orderbot/internal/gateway/exchange"
	"orderbot/internal/order"

	gobinance "github.com/adshao/go-binance/v2"
)

type spotClient struct {
	cfg    Config
	client *gobinance.Client
}

func newSpotClient(cfg Config, httpClient *http.Client) *spotClient {
	gobinance.UseTestnet = cfg.Testnet
	client := gobinance.NewClient(cfg.APIKey, cfg.APISecret)
	if cfg.RESTBaseURL != "" {
		client.BaseURL = cfg.RESTBaseURL
	}
	client.HTTPClient = httpClient
	return &spotClient{cfg: cfg, client: client}
}

func (c *spotClient) Name() string {
	if c.cfg.Testnet {
		return "binance-spot-testnet"
	}
	return "binance-spot"
}

func (c *spotClient) SymbolInfo(ctx context.Context, symbol string) (*exchange.SymbolInfo, error) {
	info, err := c.client.NewExchangeInfoService().Symbol(symbol).Do(ctx)
	if err != nil {
		err = convertError(err)
		if isInvalidSymbol(err) {
			return nil, nil
		}
		return nil, err
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

func (c *spotClient) CreateOrder(ctx context.Context, params exchange.OrderParams) (*exchange.OrderPayload, error) {
	orderType, err := spotOrderType(params.Type)
	if err != nil {
		return nil, err
	}
	svc := c.client.NewCreateOrderService().
		Symbol(params.Symbol).
		Side(gobinance.SideType(params.Side)).
		Type(orderType).
		Quantity(params.Quantity.String())
	if params.TimeInForce != "" {
		svc = svc.TimeInForce(gobinance.TimeInForceType(params.TimeInForce))
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

func (c *spotClient) GetOrder(ctx context.Context, symbol, orderID string) (*exchange.OrderPayload, error) {
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

func (c *spotClient) options() []gobinance.RequestOption {
	if c.cfg.RecvWindow <= 0 {
		return nil
	}
	return []gobinance.RequestOption{gobinance.WithRecvWindow(c.cfg.RecvWindow.Milliseconds())}
}

func spotOrderType(t order.Type) (gobinance.OrderType, error) {
	switch t {
	case order.TypeMarket:
		return gobinance.OrderTypeMarket, nil
	case order.TypeLimit:
		return gobinance.OrderTypeLimit, nil
	case order.TypeStopLimit:
		return gobinance.OrderTypeStopLossLimit, nil
	default:
		return "", fmt.Errorf("unsupported spot order type %q", t)
	}
}
