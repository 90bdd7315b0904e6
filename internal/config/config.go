package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	PostgresURL string        `env:"POSTGRES_URL"`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	DraftTTL    time.Duration `env:"DRAFT_TTL" envDefault:"72h"`
	AppEnv      string        `env:"APP_ENV" envDefault:"production"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

func (c Config) IsDevelopment() bool { return c.AppEnv == "development" }

// Load reads an optional .env file from the working directory and then
// parses the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DraftTTL <= 0 {
		return Config{}, fmt.Errorf("parse env: DRAFT_TTL must be positive, got %s", cfg.DraftTTL)
	}
	return cfg, nil
}
