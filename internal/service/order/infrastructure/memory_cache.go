package infrastructure

import (
	"context"
	"sync"

	"orderflow/internal/service/order/domain"
)

// MemorySnapshotCache 是进程内的订单快照缓存。
// 只在读未命中时回填，从不失效，条目随进程生命周期存活。
type MemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[int64]domain.Order
}

func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{
		entries: make(map[int64]domain.Order),
	}
}

// Get 返回快照的副本，调用方的修改不会影响缓存内容。
func (c *MemorySnapshotCache) Get(_ context.Context, id int64) (*domain.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	snapshot := entry
	return &snapshot, true
}

// Put 存入快照的副本，确保缓存条目与落库记录的后续变化相互隔离。
func (c *MemorySnapshotCache) Put(_ context.Context, id int64, order *domain.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = *order
}
