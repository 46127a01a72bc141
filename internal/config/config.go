package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration. API keys and the DB URL are required
// at process start; everything else has a default.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"4000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"postgres"` // "postgres" or "memory" (local runs)
	DBURL         string `env:"DB_URL"`

	// Providers
	YouTubeAPIKey     string `env:"YOUTUBE_API_KEY"`
	YouTubeMaxResults int64  `env:"YOUTUBE_MAX_RESULTS" envDefault:"5"`
	WikipediaAPIURL   string `env:"WIKIPEDIA_API_URL" envDefault:"https://en.wikipedia.org/w/api.php"`
	MDNBaseURL        string `env:"MDN_BASE_URL" envDefault:"https://developer.mozilla.org"`
	HTTPTimeout       int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"15"`

	// Generation
	GenProvider  string `env:"GEN_PROVIDER" envDefault:"gemini"` // "gemini" or "openai"
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIKey    string `env:"OPENAI_API_KEY"`
	GenModel     string `env:"GEN_MODEL"`

	// Cache
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL_SECONDS" envDefault:"3600"`

	// Queue (refresher path)
	QueueURL string `env:"QUEUE_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// Validate fails fast on missing required settings so a bad deployment dies
// at startup instead of per-request.
func (c Config) Validate() error {
	if c.StoreProvider == "postgres" && c.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
	}
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	switch c.GenProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when GEN_PROVIDER=gemini")
		}
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when GEN_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("invalid GEN_PROVIDER: %s (valid options: gemini, openai)", c.GenProvider)
	}
	return nil
}
