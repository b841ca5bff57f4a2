package geocache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"deliveryplanner/internal/core/domain/model/geo"
	"deliveryplanner/internal/core/domain/model/kernel"
)

type memoryEntry struct {
	cell     geo.Cell
	storedAt time.Time
}

// MemoryCache is an in-process ports.GeoCache. Safe for concurrent use.
//
// Pairs not put again within ttl are dropped on the next put for their
// vehicle type, matching the key expiry of RedisCache.
type MemoryCache struct {
	mu        sync.RWMutex
	estimator *Estimator
	ttl       time.Duration
	now       func() time.Time
	cells     map[kernel.VehicleType]map[pairKey]memoryEntry
}

// NewMemoryCache creates an empty cache filled by estimator. A ttl <= 0 keeps
// pairs forever.
func NewMemoryCache(estimator *Estimator, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		estimator: estimator,
		ttl:       ttl,
		now:       time.Now,
		cells:     make(map[kernel.VehicleType]map[pairKey]memoryEntry),
	}
}

// PutLocationInfo estimates every pair between points not cached yet and
// refreshes the ones that are.
func (c *MemoryCache) PutLocationInfo(_ context.Context, points []geo.Point, vt kernel.VehicleType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	byPair, ok := c.cells[vt]
	if !ok {
		byPair = make(map[pairKey]memoryEntry)
		c.cells[vt] = byPair
	}
	for _, from := range points {
		for _, to := range points {
			key := pairKey{from: from.ID, to: to.ID}
			if e, cached := byPair[key]; cached {
				e.storedAt = now
				byPair[key] = e
				continue
			}
			cell, err := c.estimator.Estimate(from.Location, to.Location, vt)
			if err != nil {
				return fmt.Errorf("estimate %s: %w", key.field(), err)
			}
			byPair[key] = memoryEntry{cell: cell, storedAt: now}
		}
	}
	c.evict(byPair, now)
	return nil
}

func (c *MemoryCache) evict(byPair map[pairKey]memoryEntry, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for key, e := range byPair {
		if now.Sub(e.storedAt) > c.ttl {
			delete(byPair, key)
		}
	}
}

// GetPointsDataTable reads the matrix for points.
func (c *MemoryCache) GetPointsDataTable(_ context.Context, points []geo.Point, vt kernel.VehicleType) ([][]geo.Cell, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byPair := c.cells[vt]
	table := make([][]geo.Cell, len(points))
	for i, from := range points {
		table[i] = make([]geo.Cell, len(points))
		for j, to := range points {
			key := pairKey{from: from.ID, to: to.ID}
			e, ok := byPair[key]
			if !ok {
				return nil, fmt.Errorf("%w: %s %s", ErrPairMissing, vt, key.field())
			}
			table[i][j] = e.cell
		}
	}
	return table, nil
}
