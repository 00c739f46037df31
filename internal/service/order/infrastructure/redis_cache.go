package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/pkg/redis"
	"orderflow/internal/service/order/domain"
)

// RedisSnapshotCache 把订单快照以 JSON 形式存入 Redis。
// 与内存实现保持同样的语义：无 TTL、无主动失效。
// 缓存是尽力而为的旁路，Redis 故障一律按未命中处理，绝不让读路径失败。
type RedisSnapshotCache struct {
	client *redis.Client
}

func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

func snapshotKey(id int64) string {
	return fmt.Sprintf("orders:snapshot:%d", id)
}

func (c *RedisSnapshotCache) Get(ctx context.Context, id int64) (*domain.Order, bool) {
	data, err := c.client.GetClient().Get(ctx, snapshotKey(id)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.Ctx(ctx).Warn().Err(err).Int64("order_id", id).Msg("snapshot cache read failed, treating as miss")
		}
		return nil, false
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("order_id", id).Msg("corrupt snapshot cache entry, treating as miss")
		return nil, false
	}
	return &order, true
}

func (c *RedisSnapshotCache) Put(ctx context.Context, id int64, order *domain.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("order_id", id).Msg("failed to marshal order snapshot")
		return
	}
	// TTL 为 0：条目不过期，也没有主动失效
	if err := c.client.GetClient().Set(ctx, snapshotKey(id), data, 0).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("order_id", id).Msg("snapshot cache write failed")
	}
}
