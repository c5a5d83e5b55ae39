package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRecord_HasMatch(t *testing.T) {
	tests := []struct {
		name string
		job  JobRecord
		want bool
	}{
		{"no result", JobRecord{ID: "j"}, false},
		{"zero result", JobRecord{ID: "j", MatchResult: &JobMatchResult{}}, false},
		{"nonzero result", JobRecord{ID: "j", MatchResult: &JobMatchResult{OverallMatch: 0.4}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.HasMatch())
		})
	}
}

func TestJobRecord_UnknownFieldsIgnored(t *testing.T) {
	// Records from other tools carry fields the matcher does not know about.
	data := []byte(`{
		"id": "job-1",
		"title": "Engineer",
		"salary_range": "100-120k",
		"skills_enriched": ["Go"]
	}`)

	var job JobRecord
	require.NoError(t, json.Unmarshal(data, &job))
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, []string{"Go"}, job.SkillsEnriched)
}
