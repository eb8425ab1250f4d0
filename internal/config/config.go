package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// MaxRatePerMinute keeps the limiter refill interval at one millisecond or more.
const MaxRatePerMinute = 60000

var ErrMissingMongoURI = errors.New("MONGO_URI is not set (check your .env file)")

type Config struct {
	MongoURI              string        `env:"MONGO_URI"`
	MongoDB               string        `env:"MONGO_DB" envDefault:"lab_mongodb"`
	MongoTLSCAFile        string        `env:"MONGO_TLS_CA_FILE"`
	ConnectTimeout        time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"5s"`
	AllowInsecureFallback bool          `env:"MONGO_ALLOW_INSECURE_FALLBACK" envDefault:"true"`

	RestaurantsCSV string `env:"RESTAURANTS_CSV" envDefault:"data/geoplaces2.csv"`
	RatingsCSV     string `env:"RATINGS_CSV" envDefault:"data/rating_final.csv"`
	DatasetsFile   string `env:"DATASETS_FILE"`

	Port           string `env:"PORT" envDefault:"8080"`
	IngestSchedule string `env:"INGEST_SCHEDULE" envDefault:"@every 240h"` // 10 days
	RatePerMinute  int    `env:"RATE_PER_MINUTE" envDefault:"120"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load populates the process environment from the given dotenv files (".env"
// when none are given; a missing file is not an error) and parses it.
// It never touches the network or the dataset files.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.MongoURI == "" {
		return Config{}, ErrMissingMongoURI
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 120
	}
	if cfg.RatePerMinute > MaxRatePerMinute {
		cfg.RatePerMinute = MaxRatePerMinute
	}
	return cfg, nil
}
