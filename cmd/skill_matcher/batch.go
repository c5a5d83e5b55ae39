package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/matching"
	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Match every job record against the candidate profile",
	Long: "Match all job records under the records directory against the candidate " +
		"profile. Jobs that already carry a valid result are skipped unless --force is set.",
	RunE: runBatch,
}

var (
	batchRecordsDir    string
	batchForce         bool
	batchMinConfidence float64
)

func init() {
	batchCmd.Flags().StringVar(&batchRecordsDir, "records-dir", "", "Directory holding the candidate profile and jobs/")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "Rematch jobs that already have results")
	batchCmd.Flags().Float64Var(&batchMinConfidence, "min-confidence", -1,
		"Flag results below this confidence score (default: confidence_threshold from config)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchRecordsDir != "" {
		cfg.RecordsDir = batchRecordsDir
	}
	if cfg.RecordsDir == "" {
		return fmt.Errorf("records directory is required (use --records-dir or records_dir in the config file)")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	records, err := store.NewRecordStore(cfg.RecordsDir, log)
	if err != nil {
		return err
	}

	jobs, err := records.LoadJobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stdout, "No job records found")
		return nil
	}

	candidate, err := records.LoadCandidate()
	if err != nil {
		return err
	}

	ctx := context.Background()
	matcher, cleanup, err := buildMatcher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	batchID := uuid.New().String()
	log.Info("starting batch match",
		zap.String("batch_id", batchID),
		zap.Int("jobs", len(jobs)),
		zap.Bool("force", batchForce || cfg.ForceReprocess))

	results := matcher.BatchMatch(ctx, jobs, candidate, matching.BatchOptions{
		ForceReprocess: batchForce || cfg.ForceReprocess,
	})

	if err := records.AttachResults(jobs, results); err != nil {
		return err
	}

	// Advisory low-confidence check: scores still count, but the operator
	// should know which results not to trust.
	minConfidence := batchMinConfidence
	if minConfidence < 0 {
		minConfidence = cfg.ConfidenceThreshold
	}
	lowConfidence := 0
	for _, r := range results {
		if !r.Skipped && r.OverallConfidence.Score < minConfidence {
			lowConfidence++
			log.Warn("low confidence match",
				zap.String("job_id", r.JobID),
				zap.Float64("confidence", r.OverallConfidence.Score),
				zap.Float64("threshold", minConfidence))
		}
	}

	hits, misses, entries := matcher.CacheStats()
	log.Info("batch match complete",
		zap.String("batch_id", batchID),
		zap.Int("jobs", len(jobs)),
		zap.Int64("cache_hits", hits),
		zap.Int64("cache_misses", misses),
		zap.Int("low_confidence", lowConfidence))

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintBatchSummary(results)
	if cfg.Verbose {
		printer.PrintCacheStats(hits, misses, entries)
	}

	return nil
}
