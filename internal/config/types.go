package config

import (
	"strings"
	"time"
)

// Config 是 orderbot 的主配置载体。
type Config struct {
	App      AppConfig      `toml:"app"`
	Exchange ExchangeConfig `toml:"exchange"`
	Order    OrderConfig    `toml:"order"`
}

type AppConfig struct {
	Env         string `toml:"env"`
	LogLevel    string `toml:"log_level"`
	LogPath     string `toml:"log_path"`
	Output      string `toml:"output"`       // text | json | yaml
	MetricsPath string `toml:"metrics_path"` // 为空则不写 metrics 文件
}

// ExchangeConfig 描述交易所连接与鉴权。
type ExchangeConfig struct {
	Market             string      `toml:"market"` // spot | futures
	Testnet            bool        `toml:"testnet"`
	RESTBaseURL        string      `toml:"rest_base_url"`
	HTTPTimeoutSeconds int         `toml:"http_timeout_seconds"`
	RecvWindowMS       int         `toml:"recv_window_ms"`
	APIKey             string      `toml:"api_key"`
	APISecret          string      `toml:"api_secret"`
	Proxy              ProxyConfig `toml:"proxy"`
}

func (e ExchangeConfig) HTTPTimeout() time.Duration {
	return time.Duration(e.HTTPTimeoutSeconds) * time.Second
}

func (e ExchangeConfig) RecvWindow() time.Duration {
	return time.Duration(e.RecvWindowMS) * time.Millisecond
}

type ProxyConfig struct {
	Enabled bool   `toml:"enabled"`
	RESTURL string `toml:"rest_url"`
}

func (p *ProxyConfig) normalize() {
	if p == nil {
		return
	}
	p.RESTURL = strings.TrimSpace(p.RESTURL)
}

type OrderConfig struct {
	DefaultSymbol  string `toml:"default_symbol"`
	ClientIDPrefix string `toml:"client_id_prefix"`
}

// keySet 用于追踪配置中显式设置的字段路径。
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

// fieldDefault 描述单个字段的默认值设置规则。
type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
