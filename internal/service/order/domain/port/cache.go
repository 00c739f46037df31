package port

import (
	"context"

	"orderflow/internal/service/order/domain"
)

// SnapshotCache 是点查路径前的读穿缓存端口。
// 缓存是存储的派生视图，允许过期：写路径（结果应用）不会主动失效缓存条目，
// 这是被刻意保留并被测试覆盖的设计属性，而不是待修的缺陷。
//
// 实现必须把缓存当作尽力而为的旁路：后端故障按未命中处理，不向调用方冒泡。
type SnapshotCache interface {
	// Get 返回缓存的订单快照，第二个返回值表示是否命中。
	Get(ctx context.Context, id int64) (*domain.Order, bool)

	// Put 写入一份订单快照。条目没有 TTL，随进程（或后端）生命周期存活。
	Put(ctx context.Context, id int64, order *domain.Order)
}
