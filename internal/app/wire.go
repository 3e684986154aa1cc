//go:build wireinject

package app

import (
	"orderbot/internal/config"
	"orderbot/internal/logger"
	"orderbot/internal/metrics"

	"github.com/google/wire"
)

func buildAppWithWire(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) (*App, error) {
	wire.Build(
		provideBinanceConfig,
		provideExchangeClient,
		provideValidator,
		provideExecutor,
		newApp,
	)
	return nil, nil
}
