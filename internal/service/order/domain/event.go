package domain

// 审批流程使用的两个逻辑主题。
// order-created 由订单服务生产、审批服务消费；
// order-result 由审批服务生产、订单服务消费。
const (
	OrderCreatedTopic = "order-created"
	OrderResultTopic  = "order-result"
)

// OrderCreatedEvent 是订单创建成功后发布的事件，携带完整的持久化记录。
// EventID 仅用于日志关联，不作为去重键：通道是至少一次投递，
// 重复消费依靠结果应用侧的幂等合并来兜底。
type OrderCreatedEvent struct {
	EventID   string `json:"eventId"`
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Status    Status `json:"status"`
	UserID    int64  `json:"userId"`
}

// OrderResultEvent 是审批服务发回的最终决定。
type OrderResultEvent struct {
	ID     int64  `json:"id"`
	Status Status `json:"status"`
}
