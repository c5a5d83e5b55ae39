package types

import "time"

// MatchOutcome tags how a bucket score was produced, so callers can tell a
// genuine low match apart from a degraded one.
type MatchOutcome string

// Outcome constants for bucket comparisons
const (
	// OutcomeMatched means the reasoning service (or cache) produced the score.
	OutcomeMatched MatchOutcome = "matched"
	// OutcomeNoSkills means one side had no skills in the bucket; the score is 0.0 by rule.
	OutcomeNoSkills MatchOutcome = "no_skills"
	// OutcomeServiceFailed means the reasoning service failed or its response was
	// unparseable; the score degraded to 0.0.
	OutcomeServiceFailed MatchOutcome = "service_failed"
)

// ConfidenceLevel is a categorical view of a confidence score
type ConfidenceLevel string

// Confidence level constants
const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// ConfidenceResult combines the component signals behind a confidence estimate
type ConfidenceResult struct {
	Score      float64            `json:"confidence_score"` // 0.0-1.0
	Level      ConfidenceLevel    `json:"confidence_level"`
	Components map[string]float64 `json:"components,omitempty"`
}

// BucketMatchResult holds the comparison outcome for a single bucket
type BucketMatchResult struct {
	MatchPercentage float64          `json:"match_percentage"` // 0.0-1.0
	Weight          float64          `json:"weight"`           // 0.0-1.0, bucket weights sum to 1.0
	JobSkills       []string         `json:"job_skills"`
	CVSkills        []string         `json:"cv_skills"`
	Confidence      ConfidenceResult `json:"confidence"`
	Outcome         MatchOutcome     `json:"outcome"`
}

// JobMatchResult is the final weighted match for one job against one candidate.
// It is created fresh per match invocation and never mutated afterwards;
// persisting it is the caller's responsibility.
type JobMatchResult struct {
	JobID             string                       `json:"job_id,omitempty"`
	OverallMatch      float64                      `json:"overall_match"` // Σ(match_percentage × weight)
	BucketResults     map[Bucket]BucketMatchResult `json:"bucket_results"`
	OverallConfidence ConfidenceResult             `json:"overall_confidence"`
	// SkillsExtracted is false when no skills could be found for the job or
	// candidate; the zero overall match is then an extraction failure, not a
	// genuine mismatch.
	SkillsExtracted bool      `json:"skills_extracted"`
	Skipped         bool      `json:"skipped,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
