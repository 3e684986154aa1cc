package app

import (
	"fmt"

	"orderbot/internal/config"
	"orderbot/internal/executor"
	"orderbot/internal/gateway/binance"
	"orderbot/internal/gateway/exchange"
	"orderbot/internal/logger"
	"orderbot/internal/metrics"
	"orderbot/internal/validator"
)

// NewApp 根据配置构建应用对象（不发起任何请求）。
func NewApp(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	return buildAppWithWire(cfg, log, rec)
}

// NewWithClient assembles an App around an existing exchange client.
func NewWithClient(cfg *config.Config, client exchange.Client, log *logger.Logger, rec *metrics.Recorder) *App {
	v := provideValidator(client, log, rec)
	e := provideExecutor(cfg, client, log, rec)
	return newApp(cfg, client, log, rec, v, e)
}

func provideBinanceConfig(cfg *config.Config) binance.Config {
	ex := cfg.Exchange
	return binance.Config{
		Market:       ex.Market,
		APIKey:       ex.APIKey,
		APISecret:    ex.APISecret,
		Testnet:      ex.Testnet,
		RESTBaseURL:  ex.RESTBaseURL,
		HTTPTimeout:  ex.HTTPTimeout(),
		RecvWindow:   ex.RecvWindow(),
		ProxyEnabled: ex.Proxy.Enabled,
		RESTProxyURL: ex.Proxy.RESTURL,
	}
}

func provideExchangeClient(cfg binance.Config) (exchange.Client, error) {
	client, err := binance.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init exchange client failed: %w", err)
	}
	return client, nil
}

func provideValidator(client exchange.Client, log *logger.Logger, rec *metrics.Recorder) *validator.Validator {
	return validator.New(client, log, rec)
}

func provideExecutor(cfg *config.Config, client exchange.Client, log *logger.Logger, rec *metrics.Recorder) *executor.Executor {
	var opts []executor.Option
	if cfg != nil && cfg.Order.ClientIDPrefix != "" {
		opts = append(opts, executor.WithClientIDPrefix(cfg.Order.ClientIDPrefix))
	}
	return executor.New(client, log, rec, opts...)
}
