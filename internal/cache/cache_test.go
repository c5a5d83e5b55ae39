package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/types"
)

func newTestCache(t *testing.T, opts Options) *Cache {
	t.Helper()
	return New(context.Background(), NewMemoryStore(), opts, nil)
}

func TestCache_RoundTrip(t *testing.T) {
	c := newTestCache(t, Options{})

	job := []string{"Go", "Python"}
	cv := []string{"Go"}

	_, ok := c.Get(types.BucketTechnical, job, cv)
	require.False(t, ok)

	c.Set(types.BucketTechnical, job, cv, 0.73)

	score, ok := c.Get(types.BucketTechnical, job, cv)
	require.True(t, ok)
	assert.Equal(t, 0.73, score)
}

func TestCache_KeyStability(t *testing.T) {
	// Ordering and casing of the skill lists must not change the key.
	a := Key(types.BucketTechnical, []string{"Go", "python"}, []string{"Docker"})
	b := Key(types.BucketTechnical, []string{"Python", "go"}, []string{"docker"})
	assert.Equal(t, a, b)

	// Different buckets or different lists must produce different keys.
	c := Key(types.BucketManagement, []string{"Go", "python"}, []string{"Docker"})
	d := Key(types.BucketTechnical, []string{"Go"}, []string{"Docker"})
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := newTestCache(t, Options{TTL: 24 * time.Hour})

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(types.BucketTechnical, []string{"Go"}, []string{"Go"}, 0.9)

	_, ok := c.Get(types.BucketTechnical, []string{"Go"}, []string{"Go"})
	require.True(t, ok)

	// Age the entry beyond the TTL.
	c.now = func() time.Time { return base.Add(25 * time.Hour) }
	_, ok = c.Get(types.BucketTechnical, []string{"Go"}, []string{"Go"})
	assert.False(t, ok, "expired entry must read as absent")
}

func TestCache_PersistEveryNWrites(t *testing.T) {
	store := &countingStore{Store: NewMemoryStore()}
	c := New(context.Background(), store, Options{PersistInterval: 3}, nil)

	for i := 0; i < 7; i++ {
		c.Set(types.BucketTechnical, []string{"Go"}, []string{string(rune('a' + i))}, 0.5)
	}

	// 7 writes with interval 3: persists after writes 3 and 6.
	assert.Equal(t, 2, store.saves)

	c.Persist()
	assert.Equal(t, 3, store.saves)
}

func TestCache_LoadFailureStartsEmpty(t *testing.T) {
	c := New(context.Background(), &failingStore{}, Options{}, nil)

	_, ok := c.Get(types.BucketTechnical, []string{"Go"}, []string{"Go"})
	assert.False(t, ok)

	// Writes still work uncached-durably.
	c.Set(types.BucketTechnical, []string{"Go"}, []string{"Go"}, 0.4)
	score, ok := c.Get(types.BucketTechnical, []string{"Go"}, []string{"Go"})
	require.True(t, ok)
	assert.Equal(t, 0.4, score)
}

func TestCache_Stats(t *testing.T) {
	c := newTestCache(t, Options{})

	c.Get(types.BucketTechnical, []string{"Go"}, []string{"Go"})
	c.Set(types.BucketTechnical, []string{"Go"}, []string{"Go"}, 1.0)
	c.Get(types.BucketTechnical, []string{"Go"}, []string{"Go"})

	hits, misses, entries := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, entries)
}

func TestCache_Prune(t *testing.T) {
	c := newTestCache(t, Options{TTL: time.Hour})

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(types.BucketTechnical, []string{"Go"}, []string{"old"}, 0.1)

	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	c.Set(types.BucketTechnical, []string{"Go"}, []string{"fresh"}, 0.2)

	removed := c.Prune()
	assert.Equal(t, 1, removed)

	_, _, entries := c.Stats()
	assert.Equal(t, 1, entries)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := newTestCache(t, Options{PersistInterval: 5})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cv := []string{string(rune('a' + n%3))}
			for j := 0; j < 50; j++ {
				c.Set(types.BucketTechnical, []string{"Go"}, cv, 0.5)
				c.Get(types.BucketTechnical, []string{"Go"}, cv)
			}
		}(i)
	}
	wg.Wait()

	_, _, entries := c.Stats()
	assert.Equal(t, 3, entries)
}

// countingStore counts Save calls.
type countingStore struct {
	Store
	saves int
}

func (s *countingStore) Save(ctx context.Context, entries map[string]Entry) error {
	s.saves++
	return s.Store.Save(ctx, entries)
}

// failingStore always errors on Load.
type failingStore struct{}

func (s *failingStore) Load(context.Context) (map[string]Entry, error) {
	return nil, assert.AnError
}

func (s *failingStore) Save(context.Context, map[string]Entry) error { return nil }
func (s *failingStore) Close() error                                 { return nil }
