package config

import (
	"fmt"
	"strings"
)

const maxClientIDPrefixLen = 4

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Exchange.validate(); err != nil {
		return err
	}
	if err := c.Order.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AppConfig) validate() error {
	if strings.TrimSpace(a.LogPath) == "" {
		return fmt.Errorf("app.log_path cannot be empty")
	}
	switch a.Output {
	case "text", "json", "yaml", "yml":
	default:
		return fmt.Errorf("app.output must be text, json or yaml, got %q", a.Output)
	}
	return nil
}

func (e *ExchangeConfig) validate() error {
	switch e.Market {
	case "spot", "futures":
	default:
		return fmt.Errorf("exchange.market must be spot or futures, got %q", e.Market)
	}
	if e.APIKey == "" || e.APISecret == "" {
		return fmt.Errorf("exchange api key and secret are required (--api-key/--api-secret or ORDERBOT_API_KEY/ORDERBOT_API_SECRET)")
	}
	if e.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("exchange.http_timeout_seconds must be > 0")
	}
	if e.RecvWindowMS < 0 || e.RecvWindowMS > 60000 {
		return fmt.Errorf("exchange.recv_window_ms must be in [0,60000]")
	}
	if e.Proxy.Enabled && e.Proxy.RESTURL == "" {
		return fmt.Errorf("exchange.proxy enabled but rest_url is empty")
	}
	return nil
}

func (o *OrderConfig) validate() error {
	if o.DefaultSymbol == "" {
		return fmt.Errorf("order.default_symbol cannot be empty")
	}
	if len(o.ClientIDPrefix) > maxClientIDPrefixLen {
		return fmt.Errorf("order.client_id_prefix must be at most %d characters", maxClientIDPrefixLen)
	}
	return nil
}
