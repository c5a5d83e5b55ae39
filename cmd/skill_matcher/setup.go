package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/cache"
	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/embedding"
	"github.com/jonathan/skill-matcher/internal/llm"
	"github.com/jonathan/skill-matcher/internal/logger"
	"github.com/jonathan/skill-matcher/internal/matching"
	"github.com/jonathan/skill-matcher/internal/reasoning"
)

// loadConfig merges the config file (when given), environment and built-in
// defaults, then validates the result.
func loadConfig() (config.Config, error) {
	cfg := config.Config{}
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if flagVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(flagJSONLogs, flagDebug || cfg.Verbose)
}

// openCache picks the cache backend: Postgres when a database URL is set,
// otherwise the local SQLite file.
func openCache(ctx context.Context, cfg config.Config, log *zap.Logger) (*cache.Cache, error) {
	var store cache.Store
	var err error

	if cfg.DatabaseURL != "" {
		store, err = cache.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect cache database: %w", err)
		}
	} else {
		store, err = cache.OpenSQLite(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache file: %w", err)
		}
	}

	opts := cache.Options{
		TTL:             time.Duration(cfg.CacheTTLDays) * 24 * time.Hour,
		PersistInterval: cfg.CachePersistInterval,
	}
	return cache.New(ctx, store, opts, log), nil
}

// buildMatcher wires the reasoning client, comparison cache and embedding
// provider into a matcher. The returned cleanup closes all of them.
func buildMatcher(ctx context.Context, cfg config.Config, log *zap.Logger) (*matching.Matcher, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY or api_key in the config file)")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create reasoning client: %w", err)
	}

	comparisonCache, err := openCache(ctx, cfg, log)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	similarity, err := embedding.NewGeminiProvider(ctx, cfg.APIKey, "")
	if err != nil {
		_ = client.Close()
		_ = comparisonCache.Close()
		return nil, nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	comparer := reasoning.NewComparer(client, comparisonCache, reasoning.Config{
		MaxRetries:  cfg.MaxRetries,
		BaseTimeout: time.Duration(cfg.BaseTimeoutSeconds) * time.Second,
	}, log)

	matcher := matching.New(comparer, comparisonCache, similarity, matching.Config{
		WeightFloor:        cfg.BucketWeightFloor,
		BucketParallelism:  cfg.BucketParallelism,
		MaxConcurrentCalls: cfg.MaxConcurrentCalls,
	}, log)

	cleanup := func() {
		if err := comparisonCache.Close(); err != nil {
			log.Warn("failed to close comparison cache", zap.Error(err))
		}
		_ = client.Close()
		_ = similarity.Close()
	}
	return matcher, cleanup, nil
}
