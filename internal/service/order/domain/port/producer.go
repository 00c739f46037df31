package port

import (
	"context"

	"orderflow/internal/service/order/domain"
)

// OrderEventProducer 是订单事件的出站端口，由 Kafka 适配器实现。
type OrderEventProducer interface {
	PublishOrderCreated(ctx context.Context, event *domain.OrderCreatedEvent) error
}
