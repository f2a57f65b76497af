package core_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripflow/internal/config"
	"tripflow/pkg/utils"
)

var Module = fx.Provide(
	provideConfig,
	provideLogger,
	provideCredentialSource,
	provideDebugSink,
)

func provideConfig() config.Config {
	return config.Load()
}

func provideLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func provideCredentialSource() config.CredentialSource {
	return config.EnvCredentialSource{}
}

func provideDebugSink(cfg config.Config, logger *zap.Logger) utils.DebugSink {
	if cfg.Generation.DebugDir == "" {
		return utils.NoopDebugSink{}
	}
	return utils.NewFileDebugSink(cfg.Generation.DebugDir, logger)
}
