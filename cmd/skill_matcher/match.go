package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/store"
	"github.com/jonathan/skill-matcher/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match one job against the candidate profile",
	Long: "Match a single job record against the candidate profile and write the " +
		"weighted bucket result back onto the job record.",
	RunE: runMatch,
}

var (
	matchRecordsDir string
	matchJobID      string
	matchForce      bool
)

func init() {
	matchCmd.Flags().StringVar(&matchRecordsDir, "records-dir", "", "Directory holding the candidate profile and jobs/")
	matchCmd.Flags().StringVar(&matchJobID, "job-id", "", "ID of the job record to match (required)")
	matchCmd.Flags().BoolVar(&matchForce, "force", false, "Rematch even when the job already has a result")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	if matchJobID == "" {
		return fmt.Errorf("--job-id is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if matchRecordsDir != "" {
		cfg.RecordsDir = matchRecordsDir
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
	var job *types.JobRecord
	for _, j := range jobs {
		if j.ID == matchJobID {
			job = j
			break
		}
	}
	if job == nil {
		return fmt.Errorf("job %s not found in %s", matchJobID, cfg.RecordsDir)
	}

	if job.HasMatch() && !matchForce {
		fmt.Fprintf(os.Stdout, "Job %s already matched (%.1f%%), use --force to rematch\n",
			job.ID, job.MatchResult.OverallMatch*100)
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

	result, err := matcher.Match(ctx, job, candidate)
	if err != nil {
		return fmt.Errorf("failed to match job %s: %w", job.ID, err)
	}

	job.MatchResult = result
	if err := records.SaveJob(job); err != nil {
		return err
	}

	log.Info("job matched",
		zap.String("job_id", job.ID),
		zap.Float64("overall_match", result.OverallMatch),
		zap.String("confidence", string(result.OverallConfidence.Level)))

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintMatchResult(job, result)
	} else {
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(jsonBytes))
	}

	return nil
}
