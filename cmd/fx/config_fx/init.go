package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripwise/internal/config"
	"tripwise/internal/logging"
)

var Module = fx.Provide(
	config.Load,
	provideLogger)

func provideLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return logger, nil
}
