package buckets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skill-matcher/internal/types"
)

func TestCategorize_KnownBuckets(t *testing.T) {
	tests := []struct {
		name     string
		skill    string
		expected types.Bucket
	}{
		{"programming language", "Python Programming", types.BucketTechnical},
		{"cloud platform", "AWS", types.BucketTechnical},
		{"container tooling", "Docker and Kubernetes", types.BucketTechnical},
		{"data analysis", "Data Analysis", types.BucketAnalytics},
		{"bi tool", "Power BI dashboards", types.BucketAnalytics},
		{"people management", "Team Management", types.BucketManagement},
		{"agile process", "Scrum Master", types.BucketManagement},
		{"industry knowledge", "Supply Chain Optimization", types.BucketDomainKnowledge},
		{"regulated field", "GDPR Compliance", types.BucketDomainKnowledge},
		{"communication", "Strong Communication", types.BucketSoftSkills},
		{"language", "English C1", types.BucketSoftSkills},
		{"unknown", "Juggling", types.BucketOther},
		{"empty", "", types.BucketOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(tt.skill, ""))
		})
	}
}

func TestCategorize_DescriptionParticipates(t *testing.T) {
	// The name alone is opaque, but the description pins the bucket.
	assert.Equal(t, types.BucketAnalytics, Categorize("Looker", "dashboard visualization tool"))
	assert.Equal(t, types.BucketOther, Categorize("Looker", ""))
}

func TestCategorize_PriorityOrder(t *testing.T) {
	// Matches both Technical ("engineering") and Analytics ("data");
	// Technical is tested first.
	assert.Equal(t, types.BucketTechnical, Categorize("Data Engineering", ""))
}

func TestCategorize_Idempotent(t *testing.T) {
	skills := []string{"Python", "Leadership", "", "Data Science", "???", "SAP FI/CO"}
	for _, skill := range skills {
		first := Categorize(skill, "")
		second := Categorize(skill, "")
		assert.Equal(t, first, second, "skill %q", skill)
		assert.True(t, first.Valid(), "skill %q produced invalid bucket", skill)
	}
}
