package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/extraction"
	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/store"
	"github.com/jonathan/skill-matcher/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Show the bucketed skills extracted from a record",
	Long: "Run skill extraction and bucket categorization for a job record or the " +
		"candidate profile without calling the reasoning service. Useful for checking " +
		"what a match would be based on.",
	RunE: runExtract,
}

var (
	extractRecordsDir string
	extractJobID      string
	extractCandidate  bool
)

func init() {
	extractCmd.Flags().StringVar(&extractRecordsDir, "records-dir", "", "Directory holding the candidate profile and jobs/")
	extractCmd.Flags().StringVar(&extractJobID, "job-id", "", "ID of the job record to extract from")
	extractCmd.Flags().BoolVar(&extractCandidate, "candidate", false, "Extract from the candidate profile instead")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	if extractJobID == "" && !extractCandidate {
		return fmt.Errorf("either --job-id or --candidate is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if extractRecordsDir != "" {
		cfg.RecordsDir = extractRecordsDir
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

	var title string
	var skills types.SkillSet

	if extractCandidate {
		candidate, err := records.LoadCandidate()
		if err != nil {
			return err
		}
		title = "CANDIDATE SKILLS"
		skills = extraction.CVSkills(candidate)
	} else {
		jobs, err := records.LoadJobs()
		if err != nil {
			return err
		}
		var job *types.JobRecord
		for _, j := range jobs {
			if j.ID == extractJobID {
				job = j
				break
			}
		}
		if job == nil {
			return fmt.Errorf("job %s not found in %s", extractJobID, cfg.RecordsDir)
		}
		title = "JOB SKILLS"
		skills = extraction.JobSkills(job)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintSkillBuckets(title, skills)
		return nil
	}

	jsonBytes, err := json.MarshalIndent(skills, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))
	return nil
}
