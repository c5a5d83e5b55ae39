// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// Bucket is a fixed semantic category used to group related skills for
// coarse-grained comparison.
type Bucket string

// The full bucket set. Categorization is total: anything that does not land
// in a named bucket falls back to BucketOther.
const (
	BucketTechnical       Bucket = "technical"
	BucketManagement      Bucket = "management"
	BucketDomainKnowledge Bucket = "domain_knowledge"
	BucketSoftSkills      Bucket = "soft_skills"
	BucketAnalytics       Bucket = "analytics"
	BucketOther           Bucket = "other"
)

// AllBuckets returns every bucket in a fixed, stable order.
func AllBuckets() []Bucket {
	return []Bucket{
		BucketTechnical,
		BucketManagement,
		BucketDomainKnowledge,
		BucketSoftSkills,
		BucketAnalytics,
		BucketOther,
	}
}

// Valid reports whether b is one of the known buckets.
func (b Bucket) Valid() bool {
	switch b {
	case BucketTechnical, BucketManagement, BucketDomainKnowledge,
		BucketSoftSkills, BucketAnalytics, BucketOther:
		return true
	}
	return false
}

// SkillSet partitions a deduplicated collection of skills by bucket.
// Skills are compared case-insensitively; the per-bucket slices keep
// insertion order, which carries no meaning.
type SkillSet map[Bucket][]string

// Total returns the number of skills across all buckets.
func (s SkillSet) Total() int {
	n := 0
	for _, skills := range s {
		n += len(skills)
	}
	return n
}

// Sorted returns the bucket's skills lowercased, deduplicated and sorted.
// Cache keys are derived from this form so that skill ordering and casing
// never produce distinct keys for the same comparison.
func (s SkillSet) Sorted(bucket Bucket) []string {
	seen := make(map[string]bool, len(s[bucket]))
	out := make([]string, 0, len(s[bucket]))
	for _, skill := range s[bucket] {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, lower)
	}
	sort.Strings(out)
	return out
}

// Buckets returns the buckets that have at least one skill, in AllBuckets order.
func (s SkillSet) Buckets() []Bucket {
	out := make([]Bucket, 0, len(s))
	for _, b := range AllBuckets() {
		if len(s[b]) > 0 {
			out = append(out, b)
		}
	}
	return out
}
