package domain

// 审批服务消费 order-created、生产 order-result 和 notifications。
// 事件结构在两个服务里各自声明一份，消息的 JSON 才是真正的契约。
const (
	OrderCreatedTopic  = "order-created"
	OrderResultTopic   = "order-result"
	NotificationsTopic = "notifications"
)

// OrderStatus 是审批决定。本服务只会产生 APPROVED / REJECTED，
// PENDING 出现在入站事件里。
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusApproved OrderStatus = "APPROVED"
	OrderStatusRejected OrderStatus = "REJECTED"
)

// OrderCreatedEvent 是订单服务发布的创建事件。
type OrderCreatedEvent struct {
	EventID   string      `json:"eventId"`
	ID        int64       `json:"id"`
	ProductID int64       `json:"productId"`
	Status    OrderStatus `json:"status"`
	UserID    int64       `json:"userId"`
}

// OrderResultEvent 是审批完成后发回订单服务的最终决定。
type OrderResultEvent struct {
	ID     int64       `json:"id"`
	Status OrderStatus `json:"status"`
}

// NotificationEvent 是审批通过后发给通知链路的消息。
type NotificationEvent struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}
