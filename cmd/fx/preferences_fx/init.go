package preferences_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripwise/internal/config"
	"tripwise/internal/repositories"
	"tripwise/internal/services"
	mem "tripwise/pkg/memcache"
)

var Module = fx.Provide(
	providePreferenceService, providePreferenceRepo)

func providePreferenceRepo(db *gorm.DB) repositories.PreferenceRepository {
	return repositories.NewPreferenceRepository(db)
}

func providePreferenceService(prefRepo repositories.PreferenceRepository, drafts mem.DraftStore, cfg config.Config, logger *zap.Logger) services.PreferenceServiceInterface {
	return services.NewPreferenceService(prefRepo, drafts, cfg.DraftTTL, logger)
}
