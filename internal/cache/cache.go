// Package cache provides a content-addressed, TTL-bounded store of bucket
// comparison scores. It is a performance optimization, not a source of truth:
// a lost or stale entry only costs a recomputation.
package cache

import (
	"context"
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Defaults for TTL and persist cadence
const (
	DefaultTTL             = 30 * 24 * time.Hour
	DefaultPersistInterval = 10 // writes between automatic persists
)

// Entry is a single cached comparison score
type Entry struct {
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Cache holds comparison scores in memory, backed by a durable Store.
// All access goes through one mutex: bucket and job workers share a single
// instance, and check-then-act on TTL must not interleave with writes.
type Cache struct {
	mu                 sync.Mutex
	entries            map[string]Entry
	store              Store
	ttl                time.Duration
	persistInterval    int
	writesSincePersist int

	hits   int64
	misses int64

	logger *zap.Logger
	now    func() time.Time // injectable for TTL tests
}

// Options configures a Cache
type Options struct {
	TTL             time.Duration
	PersistInterval int
}

// New builds a cache on top of a durable store. A store load failure is
// logged and treated as an empty cache; matching then proceeds uncached.
func New(ctx context.Context, store Store, opts Options, logger *zap.Logger) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.PersistInterval <= 0 {
		opts.PersistInterval = DefaultPersistInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	entries := make(map[string]Entry)
	if store != nil {
		loaded, err := store.Load(ctx)
		if err != nil {
			logger.Warn("failed to load comparison cache, starting empty", zap.Error(err))
		} else if loaded != nil {
			entries = loaded
		}
	}

	return &Cache{
		entries:         entries,
		store:           store,
		ttl:             opts.TTL,
		persistInterval: opts.PersistInterval,
		logger:          logger,
		now:             time.Now,
	}
}

// Key derives the stable cache key for a bucket comparison. Skill lists are
// lowercased, deduplicated and sorted first, so ordering and casing of the
// inputs never split the same comparison across keys.
func Key(bucket types.Bucket, jobSkills, cvSkills []string) string {
	raw := string(bucket) + "|" +
		strings.Join(normalizeList(jobSkills), ",") + "|" +
		strings.Join(normalizeList(cvSkills), ",")
	sum := md5.Sum([]byte(raw)) //nolint:gosec // content addressing, not security
	return hex.EncodeToString(sum[:])
}

func normalizeList(skills []string) []string {
	set := types.SkillSet{types.BucketOther: skills}
	return set.Sorted(types.BucketOther)
}

// Get returns the cached score for the comparison, if present and fresh.
// Entries older than the TTL count as misses even when physically present.
func (c *Cache) Get(bucket types.Bucket, jobSkills, cvSkills []string) (float64, bool) {
	key := Key(bucket, jobSkills, cvSkills)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.Timestamp) > c.ttl {
		c.misses++
		return 0, false
	}

	c.hits++
	return entry.Score, true
}

// Set stores a comparison score. Every persistInterval writes the full cache
// is flushed to the durable store, bounding loss on a crash to at most
// persistInterval-1 uncommitted entries.
func (c *Cache) Set(bucket types.Bucket, jobSkills, cvSkills []string, score float64) {
	key := Key(bucket, jobSkills, cvSkills)

	c.mu.Lock()
	c.entries[key] = Entry{Score: score, Timestamp: c.now()}
	c.writesSincePersist++
	persist := c.writesSincePersist >= c.persistInterval
	if persist {
		c.writesSincePersist = 0
	}
	c.mu.Unlock()

	if persist {
		c.Persist()
	}
}

// Persist writes the full in-memory cache to the durable store. Failures are
// logged, not returned: persistence is best effort.
func (c *Cache) Persist() {
	if c.store == nil {
		return
	}

	c.mu.Lock()
	snapshot := make(map[string]Entry, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	c.mu.Unlock()

	if err := c.store.Save(context.Background(), snapshot); err != nil {
		c.logger.Warn("failed to persist comparison cache", zap.Error(err))
	}
}

// Prune drops entries older than the TTL and persists the result. Returns
// the number of entries removed.
func (c *Cache) Prune() int {
	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if c.now().Sub(entry.Timestamp) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	if removed > 0 {
		c.Persist()
	}
	return removed
}

// Stats returns hit/miss counters and the current entry count.
func (c *Cache) Stats() (hits, misses int64, entries int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.entries)
}

// Close persists the cache and releases the underlying store.
func (c *Cache) Close() error {
	c.Persist()
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
