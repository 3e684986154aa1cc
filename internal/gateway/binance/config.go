package binance

import (
	"strings"
	"time"
)

const (
	MarketSpot    = "spot"
	MarketFutures = "futures"
)

type Config struct {
	Market    string
	APIKey    string
	APISecret string
	Testnet   bool

	// RESTBaseURL 为空时按 Market/Testnet 使用 SDK 内置端点。
	RESTBaseURL string
	HTTPTimeout time.Duration
	RecvWindow  time.Duration

	ProxyEnabled bool
	RESTProxyURL string
}

func (c *Config) withDefaults() Config {
	out := *c
	out.Market = strings.ToLower(strings.TrimSpace(out.Market))
	if out.Market == "" {
		out.Market = MarketSpot
	}
	out.APIKey = strings.TrimSpace(out.APIKey)
	out.APISecret = strings.TrimSpace(out.APISecret)
	out.RESTBaseURL = strings.TrimRight(strings.TrimSpace(out.RESTBaseURL), "/")
	if out.HTTPTimeout <= 0 {
		out.HTTPTimeout = 15 * time.Second
	}
	if out.RecvWindow < 0 {
		out.RecvWindow = 0
	}
	out.RESTProxyURL = strings.TrimSpace(out.RESTProxyURL)
	return out
}
