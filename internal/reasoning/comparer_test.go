package reasoning

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/skill-matcher/internal/cache"
	"github.com/jonathan/skill-matcher/internal/llm"
	"github.com/jonathan/skill-matcher/internal/types"
)

// scriptedClient returns canned responses/errors in order and counts calls.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     int
}

func (m *scriptedClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "", &googleapi.Error{Code: http.StatusInternalServerError}
}

func (m *scriptedClient) Close() error { return nil }

func newTestComparer(t *testing.T, client llm.Client, cfg Config) (*Comparer, *cache.Cache) {
	t.Helper()
	c := cache.New(context.Background(), cache.NewMemoryStore(), cache.Options{}, nil)
	comparer := NewComparer(client, c, cfg, nil)
	comparer.sleep = func(time.Duration) {}
	comparer.jitter = func() float64 { return 0 }
	return comparer, c
}

func TestCompare_EmptyListsSkipService(t *testing.T) {
	client := &scriptedClient{}
	comparer, _ := newTestComparer(t, client, Config{})

	result := comparer.Compare(context.Background(), types.BucketTechnical, nil, []string{"Go"})
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, types.OutcomeNoSkills, result.Outcome)

	result = comparer.Compare(context.Background(), types.BucketTechnical, []string{"Go"}, nil)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, types.OutcomeNoSkills, result.Outcome)

	assert.Equal(t, 0, client.calls, "empty lists must not reach the reasoning service")
}

func TestCompare_SuccessParsesAndCaches(t *testing.T) {
	client := &scriptedClient{responses: []string{"The match is 75%. Confidence: 90%"}}
	comparer, comparisonCache := newTestComparer(t, client, Config{})

	job := []string{"Go", "Kubernetes"}
	cv := []string{"Go"}

	result := comparer.Compare(context.Background(), types.BucketTechnical, job, cv)
	require.Equal(t, types.OutcomeMatched, result.Outcome)
	assert.InDelta(t, 0.75, result.Score, 1e-9)
	assert.InDelta(t, 0.9, result.LLMConfidence, 1e-9)
	assert.False(t, result.FromCache)
	assert.Equal(t, 1, client.calls)

	// Second comparison hits the cache, no extra service call.
	result = comparer.Compare(context.Background(), types.BucketTechnical, job, cv)
	assert.True(t, result.FromCache)
	assert.InDelta(t, 0.75, result.Score, 1e-9)
	assert.Equal(t, 1, client.calls)

	hits, _, _ := comparisonCache.Stats()
	assert.Equal(t, int64(1), hits)
}

func TestCompare_RetriesThenSucceeds(t *testing.T) {
	serverErr := &googleapi.Error{Code: http.StatusServiceUnavailable}
	client := &scriptedClient{
		errs:      []error{serverErr, serverErr, nil},
		responses: []string{"", "", "60%"},
	}
	comparer, _ := newTestComparer(t, client, Config{MaxRetries: 3})

	result := comparer.Compare(context.Background(), types.BucketTechnical, []string{"Go"}, []string{"Go"})
	assert.Equal(t, types.OutcomeMatched, result.Outcome)
	assert.InDelta(t, 0.6, result.Score, 1e-9)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, 3, client.calls)
}

func TestCompare_RetriesExhausted(t *testing.T) {
	serverErr := &googleapi.Error{Code: http.StatusInternalServerError}
	client := &scriptedClient{errs: []error{serverErr, serverErr, serverErr, serverErr}}
	comparer, _ := newTestComparer(t, client, Config{MaxRetries: 3})

	result := comparer.Compare(context.Background(), types.BucketTechnical, []string{"Go"}, []string{"Go"})
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, types.OutcomeServiceFailed, result.Outcome)
	assert.Equal(t, 3, client.calls, "exactly max_retries attempts, then give up")
}

func TestCompare_FatalErrorNoRetry(t *testing.T) {
	client := &scriptedClient{errs: []error{&googleapi.Error{Code: http.StatusBadRequest}}}
	comparer, _ := newTestComparer(t, client, Config{MaxRetries: 3})

	result := comparer.Compare(context.Background(), types.BucketTechnical, []string{"Go"}, []string{"Go"})
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, types.OutcomeServiceFailed, result.Outcome)
	assert.Equal(t, 1, client.calls, "fatal errors must not be retried")
}

func TestCompare_UnparseableResponse(t *testing.T) {
	client := &scriptedClient{responses: []string{"I cannot judge this."}}
	comparer, _ := newTestComparer(t, client, Config{})

	result := comparer.Compare(context.Background(), types.BucketTechnical, []string{"Go"}, []string{"Go"})
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, types.OutcomeServiceFailed, result.Outcome)
	assert.Equal(t, 1, client.calls)
}

func TestCompare_RateLimitIsRetryable(t *testing.T) {
	client := &scriptedClient{
		errs:      []error{&googleapi.Error{Code: http.StatusTooManyRequests}, nil},
		responses: []string{"", "50%"},
	}
	comparer, _ := newTestComparer(t, client, Config{MaxRetries: 3})

	result := comparer.Compare(context.Background(), types.BucketTechnical, []string{"Go"}, []string{"Go"})
	assert.Equal(t, types.OutcomeMatched, result.Outcome)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.Equal(t, 2, client.calls)
}

func TestAdaptiveTimeout(t *testing.T) {
	comparer, _ := newTestComparer(t, &scriptedClient{}, Config{BaseTimeout: 30 * time.Second})

	assert.Equal(t, 34*time.Second, comparer.adaptiveTimeout(2))
	assert.Equal(t, 120*time.Second, comparer.adaptiveTimeout(100), "timeout must cap at two minutes")
}
