package planner_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripflow/internal/config"
	"tripflow/internal/services"
)

var Module = fx.Provide(
	provideGeneratorService,
	provideDetectorService,
	provideScraperService,
	providePDFService,
	provideMediaService,
)

func provideGeneratorService(cfg config.Config, logger *zap.Logger) services.GeneratorServiceInterface {
	return services.NewGeneratorService(cfg, logger)
}

func provideDetectorService(logger *zap.Logger) services.DetectorServiceInterface {
	return services.NewDetectorService(logger)
}

func provideScraperService(logger *zap.Logger) services.ScraperServiceInterface {
	return services.NewScraperService(logger)
}

func providePDFService(logger *zap.Logger) services.PDFServiceInterface {
	return services.NewPDFService(logger)
}

func provideMediaService(cfg config.Config, creds config.CredentialSource, logger *zap.Logger) services.MediaServiceInterface {
	return services.NewMediaService(cfg, creds, logger)
}
