package session_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
)

var Module = fx.Provide(provideSessionRepo, provideSessionService)

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideSessionService(repo repositories.SessionRepository, logger *zap.Logger) services.SessionServiceInterface {
	return services.NewSessionService(repo, logger)
}
