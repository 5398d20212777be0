package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration, parsed from the environment.
// A .env file loaded by the entrypoints can supply any of these.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DBPath      string `env:"DB_PATH" envDefault:"data/app.db"`
	DatabaseURL string `env:"DATABASE_URL"`
	SeedPath    string `env:"SEED_PATH" envDefault:"data/seeds/cities.json"`
	GeodataDir  string `env:"GEODATA_DIR" envDefault:"data/geodata"`

	RedisURL       string        `env:"REDIS_URL"`
	NormalsTTL     time.Duration `env:"NORMALS_CACHE_TTL" envDefault:"24h"`
	MeteostatURL   string        `env:"METEOSTAT_BASE_URL" envDefault:"https://api.meteostat.net/v2"`
	MeteostatToken string        `env:"METEOSTAT_API_KEY"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
