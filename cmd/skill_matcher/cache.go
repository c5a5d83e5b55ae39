package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/observability"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the comparison cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show comparison cache size",
	RunE:  runCacheStats,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop expired cache entries and persist the cache",
	RunE:  runCachePrune,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	comparisonCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = comparisonCache.Close() }()

	hits, misses, entries := comparisonCache.Stats()
	observability.NewPrinter(os.Stdout).PrintCacheStats(hits, misses, entries)
	return nil
}

func runCachePrune(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	comparisonCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = comparisonCache.Close() }()

	removed := comparisonCache.Prune()
	comparisonCache.Persist()

	fmt.Fprintf(os.Stdout, "Pruned %d expired entries\n", removed)
	return nil
}
