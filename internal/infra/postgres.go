package infra

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
)

func InitPostgresql(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is not set")
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		logger.Error("Error connecting to database", zap.Error(err))
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := Migrate(connectionPool); err != nil {
		return nil, err
	}
	logger.Info("PostgreSQL connection ready")
	return connectionPool, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&db_models.Account{}, &db_models.UserPreference{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting database instance", zap.Error(err))
		return err
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
		return err
	}
	logger.Info("PostgreSQL database connection closed successfully")
	return nil
}
