package application

import (
	"context"
	"sync"
	"time"

	"github.com/mes-platform/labor-service/pkg/metrics"

	"github.com/mes-platform/labor-service/internal/domain"
)

// ShiftCache caches shift definitions by (stage, shift) with a TTL. Shift
// configuration changes rarely; validation runs read it on every call.
type ShiftCache struct {
	repo    domain.ShiftRepository
	ttl     time.Duration
	metrics *metrics.Metrics

	mu      sync.RWMutex
	entries map[shiftCacheKey]shiftCacheEntry
}

type shiftCacheKey struct {
	stageCode string
	shiftCode string
}

type shiftCacheEntry struct {
	shift     *domain.ShiftDefinition
	expiresAt time.Time
}

// NewShiftCache creates a ShiftCache over a shift repository
func NewShiftCache(repo domain.ShiftRepository, ttl time.Duration, m *metrics.Metrics) *ShiftCache {
	return &ShiftCache{
		repo:    repo,
		ttl:     ttl,
		metrics: m,
		entries: make(map[shiftCacheKey]shiftCacheEntry),
	}
}

// FindByCode returns the shift definition, from cache when fresh.
func (c *ShiftCache) FindByCode(ctx context.Context, stageCode, shiftCode string) (*domain.ShiftDefinition, error) {
	key := shiftCacheKey{stageCode: stageCode, shiftCode: shiftCode}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		if c.metrics != nil {
			c.metrics.RecordShiftCacheLookup(true)
		}
		return entry.shift, nil
	}

	if c.metrics != nil {
		c.metrics.RecordShiftCacheLookup(false)
	}

	shift, err := c.repo.FindByCode(ctx, stageCode, shiftCode)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, nil
	}

	c.mu.Lock()
	c.entries[key] = shiftCacheEntry{shift: shift, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return shift, nil
}

// Invalidate drops a cached shift definition.
func (c *ShiftCache) Invalidate(stageCode, shiftCode string) {
	c.mu.Lock()
	delete(c.entries, shiftCacheKey{stageCode: stageCode, shiftCode: shiftCode})
	c.mu.Unlock()
}
