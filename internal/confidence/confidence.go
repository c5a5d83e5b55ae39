// Package confidence combines independent signals into a single estimate of
// how trustworthy a bucket match percentage is.
package confidence

import "github.com/jonathan/skill-matcher/internal/types"

// Weights for the composite score
const (
	embeddingWeight = 0.4
	relevanceWeight = 0.3
	llmStatedWeight = 0.3

	// neutralSignal substitutes for signals that were not available.
	neutralSignal = 0.5
)

// Level thresholds
const (
	highThreshold   = 0.8
	mediumThreshold = 0.6
)

// Inputs carries the signals behind one bucket's confidence estimate.
// EmbeddingSimilarity and LLMStated are nil when the corresponding
// collaborator had nothing to say; a neutral default stands in.
type Inputs struct {
	EmbeddingSimilarity *float64 // semantic similarity between the two skill sets
	BucketWeight        float64  // this bucket's normalized weight
	MaxBucketWeight     float64  // the largest weight across the job's buckets
	LLMStated           *float64 // the reasoning service's own stated confidence
}

// Score combines the signals into a clamped composite and categorical level.
// The function is pure: identical inputs always produce identical results.
func Score(in Inputs) types.ConfidenceResult {
	embedding := neutralSignal
	if in.EmbeddingSimilarity != nil {
		embedding = clamp(*in.EmbeddingSimilarity)
	}

	// A bucket that dominates the job's skill distribution is one the
	// reasoning service saw the most evidence for.
	relevance := neutralSignal
	if in.MaxBucketWeight > 0 {
		relevance = clamp(in.BucketWeight / in.MaxBucketWeight)
	}

	stated := neutralSignal
	if in.LLMStated != nil {
		stated = clamp(*in.LLMStated)
	}

	score := clamp(embeddingWeight*embedding + relevanceWeight*relevance + llmStatedWeight*stated)

	return types.ConfidenceResult{
		Score: score,
		Level: LevelFor(score),
		Components: map[string]float64{
			"embedding_similarity": embedding,
			"bucket_relevance":     relevance,
			"llm_stated":           stated,
		},
	}
}

// LevelFor maps a composite score to its categorical level. The orchestrator
// reuses it for the weight-aggregated overall confidence.
func LevelFor(score float64) types.ConfidenceLevel {
	switch {
	case score >= highThreshold:
		return types.ConfidenceHigh
	case score >= mediumThreshold:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
