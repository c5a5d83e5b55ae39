// Package reasoning issues bucket-scoped skill comparisons to the external
// reasoning service, with caching, adaptive timeouts and retry under failure.
package reasoning

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/cache"
	"github.com/jonathan/skill-matcher/internal/llm"
	"github.com/jonathan/skill-matcher/internal/types"
)

// Defaults for the retry/timeout policy
const (
	DefaultMaxRetries  = 3                // total attempts, not extra retries
	DefaultBaseTimeout = 30 * time.Second // before the list-size bonus
	DefaultBaseDelay   = 1 * time.Second  // backoff unit
	maxTimeout         = 120 * time.Second
	perSkillBonus      = 2 * time.Second // timeout bonus per skill in either list
)

// Config tunes the comparer's retry and timeout behavior
type Config struct {
	MaxRetries  int
	BaseTimeout time.Duration
	BaseDelay   time.Duration
}

// BucketScore is the outcome of one bucket comparison. Failures are data,
// not errors: the outcome tag says whether the score can be trusted.
type BucketScore struct {
	Score         float64
	Outcome       types.MatchOutcome
	LLMConfidence float64 // the service's stated confidence, 0 when absent
	FromCache     bool
	Attempts      int
}

// Comparer performs cache-aware bucket comparisons through an llm.Client
type Comparer struct {
	client llm.Client
	cache  *cache.Cache
	cfg    Config
	logger *zap.Logger

	sleep  func(time.Duration) // injectable for tests
	jitter func() float64      // uniform [0,1), injectable for tests
}

// NewComparer builds a comparer. The cache may be shared with other
// comparers and with batch workers; it handles its own locking.
func NewComparer(client llm.Client, comparisonCache *cache.Cache, cfg Config, logger *zap.Logger) *Comparer {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseTimeout <= 0 {
		cfg.BaseTimeout = DefaultBaseTimeout
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Comparer{
		client: client,
		cache:  comparisonCache,
		cfg:    cfg,
		logger: logger,
		sleep:  time.Sleep,
		jitter: rand.Float64,
	}
}

// Compare scores how well the candidate's skills cover the job's skills
// within one bucket. It never returns an error: every failure mode degrades
// to a zero score with an outcome tag, so one bucket can never abort a job's
// overall match.
func (c *Comparer) Compare(ctx context.Context, bucket types.Bucket, jobSkills, cvSkills []string) BucketScore {
	// Empty list rule: nothing to compare, no external call.
	if len(jobSkills) == 0 || len(cvSkills) == 0 {
		c.cache.Set(bucket, jobSkills, cvSkills, 0)
		return BucketScore{Score: 0, Outcome: types.OutcomeNoSkills}
	}

	if score, ok := c.cache.Get(bucket, jobSkills, cvSkills); ok {
		return BucketScore{Score: score, Outcome: types.OutcomeMatched, FromCache: true}
	}

	prompt := buildPrompt(bucket, jobSkills, cvSkills)
	timeout := c.adaptiveTimeout(len(jobSkills) + len(cvSkills))

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.BaseDelay*time.Duration(1<<(attempt-1)) +
				time.Duration(c.jitter()*float64(time.Second))
			c.sleep(delay)
			// Slow responses often need more room, not just another try.
			timeout = timeout + timeout/2
			if timeout > maxTimeout {
				timeout = maxTimeout
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		response, err := c.client.GenerateContent(callCtx, prompt, llm.TierLite)
		cancel()

		if err != nil {
			if llm.Classify(err) == llm.ClassFatal {
				c.logger.Warn("reasoning call failed fatally",
					zap.String("bucket", string(bucket)),
					zap.Error(err),
				)
				return BucketScore{Score: 0, Outcome: types.OutcomeServiceFailed, Attempts: attempt + 1}
			}
			lastErr = err
			continue
		}

		score, ok := ExtractPercentage(response)
		if !ok {
			c.logger.Warn("no percentage found in reasoning response",
				zap.String("bucket", string(bucket)),
				zap.String("response_preview", preview(response, 120)),
			)
			return BucketScore{Score: 0, Outcome: types.OutcomeServiceFailed, Attempts: attempt + 1}
		}

		llmConfidence, _ := ExtractConfidence(response)
		c.cache.Set(bucket, jobSkills, cvSkills, score)
		return BucketScore{
			Score:         score,
			Outcome:       types.OutcomeMatched,
			LLMConfidence: llmConfidence,
			Attempts:      attempt + 1,
		}
	}

	c.logger.Warn("reasoning retries exhausted",
		zap.String("bucket", string(bucket)),
		zap.Int("attempts", c.cfg.MaxRetries),
		zap.Error(lastErr),
	)
	return BucketScore{Score: 0, Outcome: types.OutcomeServiceFailed, Attempts: c.cfg.MaxRetries}
}

// adaptiveTimeout grows the base timeout with the combined skill-list size,
// capped at maxTimeout: bigger lists mean longer prompts and slower replies.
func (c *Comparer) adaptiveTimeout(skillCount int) time.Duration {
	timeout := c.cfg.BaseTimeout + time.Duration(skillCount)*perSkillBonus
	if timeout > maxTimeout {
		timeout = maxTimeout
	}
	return timeout
}

// buildPrompt constructs the bucket-scoped comparison request.
func buildPrompt(bucket types.Bucket, jobSkills, cvSkills []string) string {
	return fmt.Sprintf(`You are comparing skills within the %q category.

Job requires these skills:
%s

Candidate has these skills:
%s

How well do the candidate's skills cover the job's requirements in this category?
Consider related and transferable skills as partial coverage.
Respond with a single match percentage between 0%% and 100%%, for example: "75%%".
Optionally add "confidence: N%%" for how certain you are.`,
		string(bucket),
		"- "+strings.Join(jobSkills, "\n- "),
		"- "+strings.Join(cvSkills, "\n- "),
	)
}

func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
