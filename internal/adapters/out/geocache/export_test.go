package geocache

import (
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
)

func (c *MemoryCache) SetClock(now func() time.Time) {
	c.now = now
}

func (c *MemoryCache) Len(vt kernel.VehicleType) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cells[vt])
}

func (c *RedisCache) SetBatchSize(n int) {
	c.batch = n
}
