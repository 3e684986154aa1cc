// Package exchangetest provides a testify mock of exchange.Client.
package exchangetest

import (
	"context"

	"orderbot/internal/gateway/exchange"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

var _ exchange.Client = (*MockClient)(nil)

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) SymbolInfo(ctx context.Context, symbol string) (*exchange.SymbolInfo, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchange.SymbolInfo), args.Error(1)
}

func (m *MockClient) CreateOrder(ctx context.Context, params exchange.OrderParams) (*exchange.OrderPayload, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchange.OrderPayload), args.Error(1)
}

func (m *MockClient) GetOrder(ctx context.Context, symbol, orderID string) (*exchange.OrderPayload, error) {
	args := m.Called(ctx, symbol, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchange.OrderPayload), args.Error(1)
}
