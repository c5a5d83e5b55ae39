// Package store persists job and candidate records as JSON files on disk.
// A records directory holds one candidate profile plus a jobs/ subdirectory
// with one file per job posting.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/types"
)

const (
	jobsSubdir    = "jobs"
	candidateFile = "candidate.json"
)

// RecordStore reads and writes records under a single directory.
type RecordStore struct {
	dir    string
	logger *zap.Logger

	// Resolved schema paths, empty when the schema files are not present
	// (validation is then skipped).
	jobSchema       string
	candidateSchema string
}

// NewRecordStore opens the records directory, creating the jobs subdirectory
// when missing.
func NewRecordStore(dir string, logger *zap.Logger) (*RecordStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("records directory is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Join(dir, jobsSubdir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create records directory: %w", err)
	}

	return &RecordStore{
		dir:             dir,
		logger:          logger,
		jobSchema:       schemas.ResolveSchemaPath(schemas.JobRecordSchema),
		candidateSchema: schemas.ResolveSchemaPath(schemas.CandidateRecordSchema),
	}, nil
}

// LoadJobs reads every job record under jobs/, sorted by filename. Files that
// fail to parse or validate are skipped with a warning rather than aborting
// the whole batch.
func (s *RecordStore) LoadJobs() ([]*types.JobRecord, error) {
	jobsDir := filepath.Join(s.dir, jobsSubdir)
	entries, err := os.ReadDir(jobsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	jobs := make([]*types.JobRecord, 0, len(names))
	for _, name := range names {
		path := filepath.Join(jobsDir, name)
		job, err := s.loadJob(path)
		if err != nil {
			s.logger.Warn("skipping unreadable job record",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (s *RecordStore) loadJob(path string) (*types.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job record: %w", err)
	}

	if s.jobSchema != "" {
		if err := schemas.ValidateJSON(s.jobSchema, path); err != nil {
			return nil, fmt.Errorf("job record failed schema validation: %w", err)
		}
	}

	var job types.JobRecord
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job record: %w", err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("job record %s has no id", path)
	}

	return &job, nil
}

// LoadCandidate reads the candidate profile from candidate.json.
func (s *RecordStore) LoadCandidate() (*types.CandidateRecord, error) {
	path := filepath.Join(s.dir, candidateFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate record: %w", err)
	}

	if s.candidateSchema != "" {
		if err := schemas.ValidateJSON(s.candidateSchema, path); err != nil {
			return nil, fmt.Errorf("candidate record failed schema validation: %w", err)
		}
	}

	var candidate types.CandidateRecord
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("failed to parse candidate record: %w", err)
	}

	return &candidate, nil
}

// SaveJob writes a job record back to jobs/<id>.json.
func (s *RecordStore) SaveJob(job *types.JobRecord) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job record has no id")
	}

	jsonBytes, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job record: %w", err)
	}

	path := filepath.Join(s.dir, jobsSubdir, job.ID+".json")
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write job record: %w", err)
	}

	return nil
}

// SaveCandidate writes the candidate profile to candidate.json.
func (s *RecordStore) SaveCandidate(candidate *types.CandidateRecord) error {
	if candidate == nil || candidate.ID == "" {
		return fmt.Errorf("candidate record has no id")
	}

	jsonBytes, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal candidate record: %w", err)
	}

	path := filepath.Join(s.dir, candidateFile)
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write candidate record: %w", err)
	}

	return nil
}

// AttachResults merges match results back onto their jobs by ID and saves the
// updated records. Results without a matching job are reported, not fatal.
func (s *RecordStore) AttachResults(jobs []*types.JobRecord, results []*types.JobMatchResult) error {
	byID := make(map[string]*types.JobRecord, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}

	for _, result := range results {
		if result.Skipped {
			// The job already holds this result from an earlier run.
			continue
		}
		job, ok := byID[result.JobID]
		if !ok {
			s.logger.Warn("match result references unknown job", zap.String("job_id", result.JobID))
			continue
		}
		job.MatchResult = result
		if err := s.SaveJob(job); err != nil {
			return fmt.Errorf("failed to save match result for job %s: %w", job.ID, err)
		}
	}

	return nil
}

// Dir returns the records directory path.
func (s *RecordStore) Dir() string {
	return s.dir
}
