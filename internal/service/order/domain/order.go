package domain

import "time"

// Status 是订单状态枚举。
// 审批流程只会产生 PENDING / APPROVED / REJECTED 三种状态，
// 其余状态为后续的履约流程预留（发货、配送等），本服务不做这些流转。
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Order 是订单聚合的根实体。
// ID 由存储层在创建时分配；ProductID 和 UserID 创建后不可变更。
type Order struct {
	ID        int64
	ProductID int64
	UserID    int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder 创建一个待审批的新订单。productID 和 userID 都是必填字段。
func NewOrder(productID, userID int64) (*Order, error) {
	if productID == 0 {
		return nil, ErrMissingProductID
	}
	if userID == 0 {
		return nil, ErrMissingUserID
	}
	now := time.Now()
	return &Order{
		ProductID: productID,
		UserID:    userID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyResult 用审批结果覆盖当前状态。
// 这里刻意不做状态机校验：结果应用是一次幂等合并，
// 重复应用同一个 (id, status) 收敛到同一终态。
func (o *Order) ApplyResult(status Status) {
	o.Status = status
	o.UpdatedAt = time.Now()
}
