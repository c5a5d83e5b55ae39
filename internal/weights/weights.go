// Package weights derives per-bucket importance weights from a job's skill
// distribution.
package weights

import "github.com/jonathan/skill-matcher/internal/types"

// DefaultFloor is the minimum pre-normalization weight for any bucket that
// has at least one skill.
const DefaultFloor = 0.1

// Compute returns a weight in [0,1] for every bucket present in the job's
// skill set, proportional to its skill count and summing to 1.0.
//
// Buckets with skills whose proportional weight falls below floor are raised
// to the floor before a single renormalization pass. When many small buckets
// are raised at once the renormalized weights can dip back under the floor;
// the floor is relative, not an absolute post-normalization guarantee.
//
// An empty skill set yields a uniform distribution over all buckets.
func Compute(skills types.SkillSet, floor float64) map[types.Bucket]float64 {
	if floor <= 0 {
		floor = DefaultFloor
	}

	out := make(map[types.Bucket]float64)

	total := skills.Total()
	if total == 0 {
		uniform := 1.0 / float64(len(types.AllBuckets()))
		for _, b := range types.AllBuckets() {
			out[b] = uniform
		}
		return out
	}

	sum := 0.0
	for _, b := range skills.Buckets() {
		w := float64(len(skills[b])) / float64(total)
		if w < floor {
			w = floor
		}
		out[b] = w
		sum += w
	}

	// Renormalize so the weights sum to 1.0 again after floor raising.
	for b, w := range out {
		out[b] = w / sum
	}

	return out
}

// Max returns the largest weight in the map, or 0 for an empty map. The
// confidence scorer uses it to judge a bucket's relevance relative to the
// dominant bucket.
func Max(weights map[types.Bucket]float64) float64 {
	max := 0.0
	for _, w := range weights {
		if w > max {
			max = w
		}
	}
	return max
}
