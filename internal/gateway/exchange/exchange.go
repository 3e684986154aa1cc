package exchange

import "context"

// Client is the remote trading API the validator and executor depend on.
type Client interface {
	Name() string

	// SymbolInfo returns nil, nil when the exchange does not list the symbol.
	SymbolInfo(ctx context.Context, symbol string) (*SymbolInfo, error)

	CreateOrder(ctx context.Context, params OrderParams) (*OrderPayload, error)

	GetOrder(ctx context.Context, symbol, orderID string) (*OrderPayload, error)
}
