package domain

import "context"

// OrderRepository 定义了订单聚合的持久化接口。
// 它位于领域层，由基础设施层实现。
type OrderRepository interface {
	// Create 持久化一个新订单并回填存储分配的 ID。
	Create(ctx context.Context, order *Order) error

	// FindByID 根据 ID 查找订单，不存在时返回 ErrOrderNotFound。
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindAll 返回全部订单。列表视图总是直读存储，不经过缓存。
	FindAll(ctx context.Context) ([]*Order, error)

	// Save 保存一个已存在订单的状态变更。
	Save(ctx context.Context, order *Order) error
}
