// Package matching orchestrates bucketed skill comparisons into weighted
// per-job match results, in parallel across buckets and across jobs.
package matching

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/skill-matcher/internal/cache"
	"github.com/jonathan/skill-matcher/internal/confidence"
	"github.com/jonathan/skill-matcher/internal/embedding"
	"github.com/jonathan/skill-matcher/internal/extraction"
	"github.com/jonathan/skill-matcher/internal/reasoning"
	"github.com/jonathan/skill-matcher/internal/types"
	"github.com/jonathan/skill-matcher/internal/weights"
)

// Concurrency defaults. The product of bucket and job parallelism is capped
// by MaxConcurrentCalls, which is what the reasoning service actually sees.
const (
	DefaultBucketParallelism  = 2
	DefaultMaxConcurrentCalls = 4
)

// BucketComparer is the comparison dependency of the orchestrator.
// *reasoning.Comparer is the production implementation.
type BucketComparer interface {
	Compare(ctx context.Context, bucket types.Bucket, jobSkills, cvSkills []string) reasoning.BucketScore
}

// Config tunes the orchestrator
type Config struct {
	WeightFloor        float64 // minimum pre-normalization bucket weight
	BucketParallelism  int     // concurrent buckets within one job
	MaxConcurrentCalls int     // ceiling on concurrent reasoning calls overall
}

// Matcher coordinates extraction, weighting, comparison and confidence
// scoring for single jobs and batches. The comparison cache is owned here
// and shared by reference with every worker.
type Matcher struct {
	comparer   BucketComparer
	cache      *cache.Cache
	similarity embedding.Provider // nil disables the embedding signal
	cfg        Config
	calls      *semaphore.Weighted // bounds reasoning calls across jobs and buckets
	logger     *zap.Logger
}

// BatchOptions controls a batch run
type BatchOptions struct {
	// ForceReprocess matches jobs even when they already carry a valid
	// nonzero match result.
	ForceReprocess bool
}

// New builds a Matcher. The cache must outlive the matcher; closing it is
// the caller's responsibility.
func New(comparer BucketComparer, comparisonCache *cache.Cache, similarity embedding.Provider, cfg Config, logger *zap.Logger) *Matcher {
	if cfg.WeightFloor <= 0 {
		cfg.WeightFloor = weights.DefaultFloor
	}
	if cfg.BucketParallelism <= 0 {
		cfg.BucketParallelism = DefaultBucketParallelism
	}
	if cfg.MaxConcurrentCalls <= 0 {
		cfg.MaxConcurrentCalls = DefaultMaxConcurrentCalls
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		comparer:   comparer,
		cache:      comparisonCache,
		similarity: similarity,
		cfg:        cfg,
		calls:      semaphore.NewWeighted(int64(cfg.MaxConcurrentCalls)),
		logger:     logger,
	}
}

// Match scores one job against one candidate. Bucket comparisons run
// concurrently, bounded by BucketParallelism and the global call ceiling.
// A failed bucket contributes 0.0 and never aborts the others.
func (m *Matcher) Match(ctx context.Context, job *types.JobRecord, candidate *types.CandidateRecord) (*types.JobMatchResult, error) {
	jobSkills := extraction.JobSkills(job)
	cvSkills := extraction.CVSkills(candidate)

	bucketWeights := weights.Compute(jobSkills, m.cfg.WeightFloor)
	maxWeight := weights.Max(bucketWeights)

	processed := make([]types.Bucket, 0, len(bucketWeights))
	for _, b := range types.AllBuckets() {
		if _, ok := bucketWeights[b]; ok {
			processed = append(processed, b)
		}
	}

	bucketResults := make(map[types.Bucket]types.BucketMatchResult, len(processed))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.BucketParallelism)

	results := make([]types.BucketMatchResult, len(processed))
	for i, b := range processed {
		i, b := i, b
		g.Go(func() error {
			results[i] = m.matchBucket(gCtx, b, jobSkills, cvSkills, bucketWeights[b], maxWeight)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overall := 0.0
	confidenceSum := 0.0
	weightSum := 0.0
	for i, b := range processed {
		bucketResults[b] = results[i]
		overall += results[i].MatchPercentage * results[i].Weight
		confidenceSum += results[i].Confidence.Score * results[i].Weight
		weightSum += results[i].Weight
	}

	overallConfidence := 0.0
	if weightSum > 0 {
		overallConfidence = confidenceSum / weightSum
	}

	return &types.JobMatchResult{
		JobID:         job.ID,
		OverallMatch:  overall,
		BucketResults: bucketResults,
		OverallConfidence: types.ConfidenceResult{
			Score: overallConfidence,
			Level: confidence.LevelFor(overallConfidence),
		},
		SkillsExtracted: jobSkills.Total() > 0 && cvSkills.Total() > 0,
		Timestamp:       time.Now(),
	}, nil
}

// matchBucket performs one cache-aware bucket comparison plus its
// confidence estimate.
func (m *Matcher) matchBucket(ctx context.Context, b types.Bucket, jobSkills, cvSkills types.SkillSet, weight, maxWeight float64) types.BucketMatchResult {
	jobList := jobSkills.Sorted(b)
	cvList := cvSkills.Sorted(b)

	score := m.compareGated(ctx, b, jobList, cvList)

	var embeddingSim *float64
	if m.similarity != nil && len(jobList) > 0 && len(cvList) > 0 {
		sim, err := m.similarity.Similarity(ctx, jobList, cvList)
		if err != nil {
			m.logger.Debug("embedding similarity unavailable",
				zap.String("bucket", string(b)),
				zap.Error(err),
			)
		} else {
			embeddingSim = &sim
		}
	}

	var llmStated *float64
	if score.Outcome == types.OutcomeMatched && score.LLMConfidence > 0 {
		llmStated = &score.LLMConfidence
	}

	conf := confidence.Score(confidence.Inputs{
		EmbeddingSimilarity: embeddingSim,
		BucketWeight:        weight,
		MaxBucketWeight:     maxWeight,
		LLMStated:           llmStated,
	})

	return types.BucketMatchResult{
		MatchPercentage: score.Score,
		Weight:          weight,
		JobSkills:       jobList,
		CVSkills:        cvList,
		Confidence:      conf,
		Outcome:         score.Outcome,
	}
}

// compareGated runs the comparison under the global reasoning-call
// semaphore so that bucket and job parallelism combined never exceed the
// configured ceiling.
func (m *Matcher) compareGated(ctx context.Context, b types.Bucket, jobList, cvList []string) reasoning.BucketScore {
	if err := m.calls.Acquire(ctx, 1); err != nil {
		return reasoning.BucketScore{Score: 0, Outcome: types.OutcomeServiceFailed}
	}
	defer m.calls.Release(1)

	return m.comparer.Compare(ctx, b, jobList, cvList)
}

// BatchMatch scores many jobs against one candidate. Jobs run concurrently
// in chunks; the cache is persisted after every chunk so an interruption
// loses at most one chunk of comparisons. Jobs that already carry a valid
// nonzero match are skipped unless opts.ForceReprocess is set.
func (m *Matcher) BatchMatch(ctx context.Context, jobs []*types.JobRecord, candidate *types.CandidateRecord, opts BatchOptions) []*types.JobMatchResult {
	results := make([]*types.JobMatchResult, len(jobs))

	jobParallelism := m.cfg.MaxConcurrentCalls / m.cfg.BucketParallelism
	if jobParallelism < 1 {
		jobParallelism = 1
	}

	for start := 0; start < len(jobs); start += jobParallelism {
		end := start + jobParallelism
		if end > len(jobs) {
			end = len(jobs)
		}

		g, gCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				job := jobs[i]
				if !opts.ForceReprocess && job.HasMatch() {
					skipped := *job.MatchResult
					skipped.Skipped = true
					results[i] = &skipped
					return nil
				}

				result, err := m.Match(gCtx, job, candidate)
				if err != nil {
					m.logger.Warn("job match failed",
						zap.String("job_id", job.ID),
						zap.Error(err),
					)
					return nil
				}
				results[i] = result
				return nil
			})
		}
		_ = g.Wait() // workers never return errors; they log and degrade

		m.cache.Persist()
	}

	return results
}

// CacheStats exposes the shared cache's counters for reporting.
func (m *Matcher) CacheStats() (hits, misses int64, entries int) {
	return m.cache.Stats()
}
