package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"
	"google.golang.org/api/option"

	"studydesk/internal/aggregate"
	"studydesk/internal/cache"
	"studydesk/internal/config"
	"studydesk/internal/generate"
	"studydesk/internal/logger"
	"studydesk/internal/queue"
	"studydesk/internal/source"
	"studydesk/internal/store"
)

// Deps bundles common runtime dependencies for services.
type Deps struct {
	Config     config.Config
	Log        *slog.Logger
	Store      store.Store
	Cache      cache.Cache
	Queue      queue.Queue
	Aggregator *aggregate.Aggregator
	Generator  generate.Generator
}

// Build loads env, config, and shared components. Missing required settings
// fail here, at process start, not per-request.
func Build(ctx context.Context) (Deps, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return Deps{}, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	c := buildCache(cfg, log)
	gen, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize generator: %w", err)
	}
	agg, err := buildAggregator(ctx, cfg, log, st)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize aggregator: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}

	return Deps{
		Config:     cfg,
		Log:        log,
		Store:      st,
		Cache:      c,
		Queue:      q,
		Aggregator: agg,
		Generator:  gen,
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	case "memory":
		log.Warn("using in-memory store; records do not survive restarts")
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: postgres, memory)", cfg.StoreProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		log.Info("no REDIS_ADDR configured; question caching disabled")
		return cache.NewNoOpCache()
	}
	c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		// Cache is an optimization; a dead Redis must not block startup.
		log.Warn("redis unavailable, falling back to noop cache", "err", err)
		return cache.NewNoOpCache()
	}
	log.Info("using Redis question cache", "addr", cfg.RedisAddr)
	return c
}

func buildGenerator(ctx context.Context, cfg config.Config, log *slog.Logger) (generate.Generator, error) {
	switch cfg.GenProvider {
	case "gemini":
		gen, err := generate.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		log.Info("using Gemini generator", "model", cfg.GenModel)
		return gen, nil
	case "openai":
		gen, err := generate.NewOpenAIGenerator(cfg.OpenAIKey, openai.ChatModel(cfg.GenModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI generator", "model", cfg.GenModel)
		return gen, nil
	default:
		return nil, fmt.Errorf("invalid GEN_PROVIDER: %s (valid options: gemini, openai)", cfg.GenProvider)
	}
}

func buildAggregator(ctx context.Context, cfg config.Config, log *slog.Logger, st store.Store) (*aggregate.Aggregator, error) {
	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	wiki := source.NewWikipedia(cfg.WikipediaAPIURL, timeout)
	mdn := source.NewMDN(cfg.MDNBaseURL, timeout)
	yt, err := source.NewYouTube(ctx, cfg.YouTubeMaxResults, option.WithAPIKey(cfg.YouTubeAPIKey))
	if err != nil {
		return nil, err
	}
	return aggregate.New(log, wiki, yt, mdn, st), nil
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	if cfg.QueueURL == "" {
		log.Info("no QUEUE_URL configured; background refresh disabled")
		return nil, nil
	}
	nc, err := nats.Connect(cfg.QueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("using NATS refresh queue")
	return queue.NewNATS(log, nc), nil
}
