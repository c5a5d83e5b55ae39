package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/types"
)

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()
	s, err := NewRecordStore(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestNewRecordStore_CreatesJobsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	_, err := NewRecordStore(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "jobs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewRecordStore_EmptyDir(t *testing.T) {
	_, err := NewRecordStore("", nil)
	assert.Error(t, err)
}

func TestSaveAndLoadJobs(t *testing.T) {
	s := newTestStore(t)

	jobs := []*types.JobRecord{
		{ID: "job-b", Title: "Backend Engineer", SkillsEnriched: []string{"Go", "Postgres"}},
		{ID: "job-a", Title: "Data Analyst", Skills: []string{"SQL", "Tableau"}},
	}
	for _, job := range jobs {
		require.NoError(t, s.SaveJob(job))
	}

	loaded, err := s.LoadJobs()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Sorted by filename, so job-a comes first.
	assert.Equal(t, "job-a", loaded[0].ID)
	assert.Equal(t, "job-b", loaded[1].ID)
	assert.Equal(t, []string{"Go", "Postgres"}, loaded[1].SkillsEnriched)
}

func TestLoadJobs_SkipsMalformedFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveJob(&types.JobRecord{ID: "job-good", Title: "Engineer"}))

	badPath := filepath.Join(s.Dir(), "jobs", "job-bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{ not json"), 0644))

	notJSON := filepath.Join(s.Dir(), "jobs", "notes.txt")
	require.NoError(t, os.WriteFile(notJSON, []byte("ignore me"), 0644))

	loaded, err := s.LoadJobs()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "job-good", loaded[0].ID)
}

func TestLoadJobs_SkipsRecordWithoutID(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.Dir(), "jobs", "anonymous.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": "Mystery Role"}`), 0644))

	loaded, err := s.LoadJobs()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveAndLoadCandidate(t *testing.T) {
	s := newTestStore(t)

	candidate := &types.CandidateRecord{
		ID:             "cand-1",
		Name:           "Sam",
		SkillsEnriched: []string{"Python", "Docker"},
	}
	require.NoError(t, s.SaveCandidate(candidate))

	loaded, err := s.LoadCandidate()
	require.NoError(t, err)
	assert.Equal(t, "cand-1", loaded.ID)
	assert.Equal(t, []string{"Python", "Docker"}, loaded.SkillsEnriched)
}

func TestLoadCandidate_Missing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadCandidate()
	assert.Error(t, err)
}

func TestSaveJob_NoID(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SaveJob(&types.JobRecord{}))
	assert.Error(t, s.SaveJob(nil))
}

func TestAttachResults(t *testing.T) {
	s := newTestStore(t)

	jobs := []*types.JobRecord{
		{ID: "job-a", Title: "Backend Engineer"},
		{ID: "job-b", Title: "Data Analyst"},
	}
	for _, job := range jobs {
		require.NoError(t, s.SaveJob(job))
	}

	results := []*types.JobMatchResult{
		{
			JobID:        "job-a",
			OverallMatch: 0.8,
			BucketResults: map[types.Bucket]types.BucketMatchResult{
				types.BucketTechnical: {
					MatchPercentage: 0.8,
					Weight:          1.0,
					Confidence:      types.ConfidenceResult{Score: 0.7, Level: types.ConfidenceMedium},
					Outcome:         types.OutcomeMatched,
				},
			},
			OverallConfidence: types.ConfidenceResult{Score: 0.7, Level: types.ConfidenceMedium},
			Timestamp:         time.Now().UTC(),
		},
		{JobID: "job-unknown", OverallMatch: 0.1},
	}

	require.NoError(t, s.AttachResults(jobs, results))

	loaded, err := s.LoadJobs()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	require.NotNil(t, loaded[0].MatchResult)
	assert.InDelta(t, 0.8, loaded[0].MatchResult.OverallMatch, 1e-9)
	assert.True(t, loaded[0].HasMatch())
	assert.Nil(t, loaded[1].MatchResult)
}
