package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"orderbot/internal/order"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// usageError 对应命令行参数错误，退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

const defaultSymbol = "BTCUSDT"

type cliOptions struct {
	configPath string
	symbol     string
	orderType  string
	side       string
	quantity   string
	price      string
	stopPrice  string

	// 以下参数仅在显式传入时通过 config.FlagKeys 覆盖配置。
	apiKey      string
	apiSecret   string
	market      string
	testnet     bool
	baseURL     string
	output      string
	logFile     string
	logLevel    string
	metricsFile string
}

func newFlagSet(stderr io.Writer) (*pflag.FlagSet, *cliOptions) {
	opts := &cliOptions{}
	fs := pflag.NewFlagSet("orderbot", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.StringVar(&opts.apiKey, "api-key", "", "Binance API key (or ORDERBOT_API_KEY / BINANCE_API_KEY)")
	fs.StringVar(&opts.apiSecret, "api-secret", "", "Binance API secret (or ORDERBOT_API_SECRET / BINANCE_API_SECRET)")
	fs.StringVar(&opts.symbol, "symbol", defaultSymbol, "trading pair, e.g. BTCUSDT or btc/usdt; when omitted order.default_symbol applies")
	fs.StringVar(&opts.orderType, "order-type", "", "order type: market, limit or stop-limit (required)")
	fs.StringVar(&opts.side, "side", "", "order side: BUY or SELL (required)")
	fs.StringVar(&opts.quantity, "quantity", "", "order quantity (required)")
	fs.StringVar(&opts.price, "price", "", "limit price, required for limit and stop-limit orders")
	fs.StringVar(&opts.stopPrice, "stop-price", "", "trigger price, required for stop-limit orders")
	fs.StringVar(&opts.configPath, "config", "", "config file (or ORDERBOT_CONFIG)")
	fs.StringVar(&opts.market, "market", "spot", "binance market: spot or futures")
	fs.BoolVar(&opts.testnet, "testnet", true, "use the binance testnet")
	fs.StringVar(&opts.baseURL, "base-url", "", "override the REST endpoint")
	fs.StringVar(&opts.output, "output", "text", "output format: text, json or yaml")
	fs.StringVar(&opts.logFile, "log-file", "trading_bot.log", "append-only log file")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics to this file on exit")
	return fs, opts
}

// parseArgs 解析参数；必填项缺失或枚举值非法返回 usageError。
func parseArgs(fs *pflag.FlagSet, opts *cliOptions, args []string) (order.Params, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return order.Params{}, err
		}
		return order.Params{}, &usageError{err: err}
	}
	if fs.NArg() > 0 {
		return order.Params{}, usagef("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	var missing []string
	for _, name := range []string{"order-type", "side", "quantity"} {
		if !fs.Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return order.Params{}, usagef("the following arguments are required: %s", strings.Join(missing, ", "))
	}

	typ, err := order.ParseType(opts.orderType)
	if err != nil {
		return order.Params{}, usagef("argument --order-type: %v", err)
	}
	side, err := order.ParseSide(opts.side)
	if err != nil {
		return order.Params{}, usagef("argument --side: %v", err)
	}
	qty, err := decimal.NewFromString(strings.TrimSpace(opts.quantity))
	if err != nil {
		return order.Params{}, usagef("argument --quantity: invalid number %q", opts.quantity)
	}
	price, err := optionalDecimal(fs, "price", opts.price)
	if err != nil {
		return order.Params{}, err
	}
	stopPrice, err := optionalDecimal(fs, "stop-price", opts.stopPrice)
	if err != nil {
		return order.Params{}, err
	}
	// 未显式传入时留空，由 App 使用配置中的 order.default_symbol。
	sym := ""
	if fs.Changed("symbol") {
		sym = strings.TrimSpace(opts.symbol)
	}
	return order.Params{
		Symbol:    sym,
		Side:      side,
		Type:      typ,
		Quantity:  qty,
		Price:     price,
		StopPrice: stopPrice,
	}, nil
}

func optionalDecimal(fs *pflag.FlagSet, name, raw string) (decimal.NullDecimal, error) {
	if !fs.Changed(name) || strings.TrimSpace(raw) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NullDecimal{}, usagef("argument --%s: invalid number %q", name, raw)
	}
	return decimal.NewNullDecimal(d), nil
}
