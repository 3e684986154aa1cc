package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"orderbot/internal/app"
	"orderbot/internal/config"
	"orderbot/internal/display"
	"orderbot/internal/gateway/exchange"
	"orderbot/internal/logger"
	"orderbot/internal/metrics"
	"orderbot/internal/order"
	"orderbot/internal/validator"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type orderRunner interface {
	Run(ctx context.Context, p order.Params) (*order.PlacedOrder, error)
}

// buildRunner 在测试中替换为注入 mock 客户端的实现。
var buildRunner = func(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) (orderRunner, error) {
	return app.NewApp(cfg, log, rec)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: reading .env failed: %v\n", err)
	}

	fs, opts := newFlagSet(stderr)
	params, err := parseArgs(fs, opts, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "orderbot: error: %v\n", err)
		fmt.Fprintln(stderr, "usage: orderbot --order-type TYPE --side SIDE --quantity QTY [flags]")
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath, fs)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitError
	}
	format, err := display.ParseFormat(cfg.App.Output)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitError
	}

	log, err := logger.Open(cfg.App.LogPath, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(stdout, "Error: opening log file failed: %v\n", err)
		return exitError
	}
	defer log.Close()

	rec := metrics.NewRecorder()
	defer func() {
		if err := rec.WriteTextfile(cfg.App.MetricsPath); err != nil {
			log.Warnf("Writing metrics file failed: %v", err)
		}
	}()

	runner, err := buildRunner(cfg, log, rec)
	if err != nil {
		log.Errorf("Initialization failed: %v", err)
		fmt.Fprintf(stdout, "Unexpected Error: %v\n", err)
		return exitError
	}

	placed, err := runner.Run(ctx, params)
	if err != nil {
		fmt.Fprintln(stdout, describeError(err))
		return exitError
	}
	if err := display.Render(stdout, format, placed); err != nil {
		log.Errorf("Rendering order failed: %v", err)
		fmt.Fprintf(stdout, "Unexpected Error: %v\n", err)
		return exitError
	}
	done := stdout
	if format != display.FormatText {
		done = stderr
	}
	fmt.Fprintf(done, "\nExecution successful. Check %s for details.\n", cfg.App.LogPath)
	return exitOK
}

// describeError 将错误映射为控制台提示。
func describeError(err error) string {
	var (
		invalidSymbol *app.InvalidSymbolError
		incomplete    *order.IncompleteError
		invalid       *order.InvalidError
		rejection     *order.RejectionError
		apiErr        *exchange.APIError
	)
	switch {
	case errors.As(err, &invalidSymbol):
		out := invalidSymbol.Outcome
		if out.Status == validator.StatusNotFound {
			return fmt.Sprintf("Error: Invalid symbol %s", out.Symbol)
		}
		return fmt.Sprintf("Error: Invalid symbol %s (%s)", out.Symbol, out.Error())
	case errors.As(err, &incomplete):
		if incomplete.Type == order.TypeStopLimit {
			return "Error: Both price and stop-price are required for stop-limit orders"
		}
		return "Error: Price is required for limit orders"
	case errors.As(err, &invalid):
		return fmt.Sprintf("Error: %v", invalid)
	case errors.As(err, &rejection):
		return fmt.Sprintf("API Error: APIError(code=%d): %s", rejection.Code, rejection.Message)
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API Error: APIError(code=%d): %s", apiErr.Code, apiErr.Message)
	case errors.Is(err, context.Canceled):
		return "Error: interrupted"
	default:
		return fmt.Sprintf("Unexpected Error: %v", err)
	}
}
