package config

import (
	"strings"
)

// 默认值常量
const (
	defaultAppEnv            = "dev"
	defaultAppLogLevel       = "info"
	defaultAppLogPath        = "trading_bot.log"
	defaultAppOutput         = "text"
	defaultExchangeMarket    = "spot"
	defaultExchangeTestnet   = true
	defaultExchangeTimeout   = 15
	defaultExchangeRecvMS    = 5000
	defaultOrderSymbol       = "BTCUSDT"
	defaultOrderClientPrefix = "ob-"
)

// applyDefaults 为所有子配置应用默认值。
func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Exchange.applyDefaults(keys)
	c.Order.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &a.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
		stringFieldDefault("app.log_path", &a.LogPath, defaultAppLogPath),
		stringFieldDefault("app.output", &a.Output, defaultAppOutput),
	)
	a.Output = strings.ToLower(strings.TrimSpace(a.Output))
	a.MetricsPath = strings.TrimSpace(a.MetricsPath)
}

func (e *ExchangeConfig) applyDefaults(keys keySet) {
	if e == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("exchange.market", &e.Market, defaultExchangeMarket),
		boolFieldDefault("exchange.testnet", &e.Testnet, defaultExchangeTestnet),
		fieldDefault{
			key:   "exchange.http_timeout_seconds",
			need:  func() bool { return e.HTTPTimeoutSeconds <= 0 },
			apply: func() { e.HTTPTimeoutSeconds = defaultExchangeTimeout },
		},
		fieldDefault{
			key:   "exchange.recv_window_ms",
			need:  func() bool { return e.RecvWindowMS <= 0 },
			apply: func() { e.RecvWindowMS = defaultExchangeRecvMS },
		},
	)
	e.Market = strings.ToLower(strings.TrimSpace(e.Market))
	e.APIKey = strings.TrimSpace(e.APIKey)
	e.APISecret = strings.TrimSpace(e.APISecret)
	e.RESTBaseURL = strings.TrimSpace(e.RESTBaseURL)
	e.Proxy.normalize()
}

func (o *OrderConfig) applyDefaults(keys keySet) {
	if o == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("order.default_symbol", &o.DefaultSymbol, defaultOrderSymbol),
		stringFieldDefault("order.client_id_prefix", &o.ClientIDPrefix, defaultOrderClientPrefix),
	)
	o.DefaultSymbol = strings.ToUpper(strings.TrimSpace(o.DefaultSymbol))
}

// Helper functions

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func boolFieldDefault(key string, target *bool, def bool) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}
