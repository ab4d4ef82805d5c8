package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=movie_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type TMDBConfig struct {
	APIKey  string        `env:"TMDB_API_KEY"`
	BaseURL string        `env:"TMDB_BASE_URL, default=https://api.themoviedb.org/3"`
	Timeout time.Duration `env:"TMDB_TIMEOUT,  default=10s"`
}

// RateLimitConfig tunes the token bucket guarding the auth endpoints.
type RateLimitConfig struct {
	Enabled     bool          `env:"RATE_LIMIT_ENABLED,      default=true"`
	Burst       int           `env:"RATE_LIMIT_BURST,        default=10"`
	RefillEvery time.Duration `env:"RATE_LIMIT_REFILL_EVERY, default=2s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
