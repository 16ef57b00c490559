package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"promptpick/pkg/cache"
	"promptpick/pkg/catalog"
	"promptpick/pkg/category"
	"promptpick/pkg/cerebras"
	"promptpick/pkg/config"
	"promptpick/pkg/embedding"
	"promptpick/pkg/engine"
	"promptpick/pkg/games"
	"promptpick/pkg/gemini"
	"promptpick/pkg/history"
	"promptpick/pkg/nvidia"
	"promptpick/pkg/selector"
	"promptpick/pkg/surreal"
	"promptpick/pkg/template"
)

// closers collects cleanup functions run in reverse order.
type closers []func()

func (c closers) Close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func newRNG() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>1|1))
}

// app holds the wired components of one command invocation.
type app struct {
	router  *category.Router
	engine  *engine.Engine
	history history.Store
	cleanup closers
}

func (a *app) Close() {
	a.cleanup.Close()
}

// connectRedis returns nil when REDIS_URL is not set.
func connectRedis() (*cache.Cache, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, nil
	}
	rc, err := cache.NewRedisCache(redisURL, "promptpick")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rc, nil
}

// buildApp wires the router and, when withEngine is set, the catalog,
// selector, templates and game history.
func buildApp(ctx context.Context, cfg *config.Config, withEngine bool) (*app, error) {
	a := &app{}

	rc, err := connectRedis()
	if err != nil {
		return nil, err
	}
	if rc != nil {
		a.cleanup = append(a.cleanup, func() { _ = rc.Close() })
	}

	a.router, err = buildRouter(ctx, cfg, rc)
	if err != nil {
		a.Close()
		return nil, err
	}
	if !withEngine {
		return a, nil
	}

	cat, catCleanup, err := buildCatalog(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cleanup = append(a.cleanup, catCleanup...)

	if rc != nil {
		a.history = history.NewRedis(rc, history.DefaultLimit, history.DefaultTTL)
	} else {
		a.history, err = history.NewMemory(cfg.Classifier.CacheSize, history.DefaultLimit)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	dict := games.NewDefaultDictionary(newRNG())
	a.engine = engine.New(a.router, selector.New(cat, newRNG()), template.New(dict, cfg.Games.Count))
	return a, nil
}

func buildRouter(ctx context.Context, cfg *config.Config, rc *cache.Cache) (*category.Router, error) {
	opts := []category.RouterOption{category.WithTimeout(cfg.ClassifierTimeout())}

	if rc != nil {
		opts = append(opts, category.WithCache(cache.NewCategoryCache(rc, cfg.CacheTTL())))
		zap.S().Infow("category cache backed by redis")
	} else {
		lc, err := cache.NewLRUCategoryCache(cfg.Classifier.CacheSize, cfg.CacheTTL())
		if err != nil {
			return nil, err
		}
		opts = append(opts, category.WithCache(lc))
		zap.S().Infow("REDIS_URL not set, using in-process category cache", "size", cfg.Classifier.CacheSize)
	}

	completer, err := buildCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if completer != nil {
		opts = append(opts, category.WithPaidClassifier(category.NewLLMClassifier(completer)))
	}

	if key := os.Getenv("EMBEDDING_API_KEY"); key != "" {
		url := os.Getenv("EMBEDDING_API_URL")
		if url == "" {
			url = cfg.Embedding.URL
		}
		client := embedding.NewCachedClient(embedding.NewClient(key, url), cfg.Embedding.CacheSize)
		opts = append(opts, category.WithFreeClassifier(category.NewEmbeddingClassifier(client, cfg.Classifier.MinSimilarity)))
	} else {
		zap.S().Infow("EMBEDDING_API_KEY not set, free tier uses keyword classification")
	}

	return category.NewRouter(opts...), nil
}

// buildCompleter returns the configured LLM backend, or nil when its key is
// missing.
func buildCompleter(ctx context.Context, cfg *config.Config) (category.Completer, error) {
	temperature := cfg.ModelSettings.Temperature
	topP := cfg.ModelSettings.TopP
	model := cfg.Classifier.Model

	switch strings.ToLower(cfg.Classifier.Provider) {
	case "", "cerebras":
		key := os.Getenv("CEREBRAS_API_KEY")
		if key == "" {
			zap.S().Infow("CEREBRAS_API_KEY not set, paid tiers use embedding classification")
			return nil, nil
		}
		var models []cerebras.ModelConfig
		if model != "" {
			models = []cerebras.ModelConfig{{ID: model}}
		}
		return cerebras.NewClient(key, temperature, topP, models), nil
	case "nvidia":
		key := os.Getenv("NVIDIA_API_KEY")
		if key == "" {
			zap.S().Infow("NVIDIA_API_KEY not set, paid tiers use embedding classification")
			return nil, nil
		}
		var models []nvidia.ModelConfig
		if model != "" {
			models = []nvidia.ModelConfig{{ID: model}}
		}
		return nvidia.NewClient(key, os.Getenv("NVIDIA_BASE_URL"), temperature, topP, models), nil
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			zap.S().Infow("GEMINI_API_KEY not set, paid tiers use embedding classification")
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, key, gemini.Options{Model: model, Temperature: float32(temperature)})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Classifier.Provider)
	}
}

func buildCatalog(ctx context.Context, cfg *config.Config) (catalog.Catalog, closers, error) {
	switch cfg.Catalog.Source {
	case "", "file":
		mem, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, err
		}
		return mem, nil, nil
	case "surreal":
		client, err := connectSurreal(ctx)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewSurreal(client), closers{func() { client.Close(context.Background()) }}, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

func connectSurreal(ctx context.Context) (*surreal.Client, error) {
	surrealHost := os.Getenv("SURREAL_DB_HOST")
	surrealUser := os.Getenv("SURREAL_DB_USER")
	surrealPass := os.Getenv("SURREAL_DB_PASS")
	surrealNS := os.Getenv("SURREAL_DB_NAMESPACE")
	surrealDB := os.Getenv("SURREAL_DB_DATABASE")

	if surrealHost == "" {
		return nil, fmt.Errorf("missing required environment variable: SURREAL_DB_HOST")
	}
	if surrealUser == "" {
		return nil, fmt.Errorf("missing required environment variable: SURREAL_DB_USER")
	}
	if surrealPass == "" {
		return nil, fmt.Errorf("missing required environment variable: SURREAL_DB_PASS")
	}
	if surrealNS == "" {
		surrealNS = "promptpick"
	}
	if surrealDB == "" {
		surrealDB = "catalog"
	}

	// Add protocol if missing
	if !strings.HasPrefix(surrealHost, "ws://") && !strings.HasPrefix(surrealHost, "wss://") {
		surrealHost = "wss://" + surrealHost + "/rpc"
	}

	zap.S().Infow("connecting to SurrealDB", "host", surrealHost, "ns", surrealNS, "db", surrealDB)
	client, err := surreal.NewClient(ctx, surrealHost, surrealUser, surrealPass, surrealNS, surrealDB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}
	return client, nil
}
