// Package embedding supplies semantic similarity between skill collections,
// used as one signal in confidence scoring.
package embedding

import (
	"context"
	"math"
	"strings"
)

// Provider computes a similarity score in [0,1] between two skill
// collections. A nil Provider is valid everywhere it is accepted; consumers
// then fall back to a neutral default.
type Provider interface {
	Similarity(ctx context.Context, a, b []string) (float64, error)
	Close() error
}

// joinSkills renders a skill list as one embedding input.
func joinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// cosine computes cosine similarity between two vectors, mapped from
// [-1,1] to [0,1]. Mismatched or empty vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (sim + 1) / 2
}
