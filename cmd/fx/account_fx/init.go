package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripwise/internal/config"
	"tripwise/internal/repositories"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideTokenManager)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenManager(cfg config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenManager, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, logger)
}
