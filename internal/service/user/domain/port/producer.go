package port

import (
	"context"

	"orderflow/internal/service/user/domain"
)

// ResultProducer 是审批决定的出站端口，由 Kafka 适配器实现。
type ResultProducer interface {
	PublishOrderResult(ctx context.Context, event *domain.OrderResultEvent) error
}
