package infrastructure

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/order/domain"
)

// OrderProducerAdapter 实现 port.OrderEventProducer，向 order-created 主题写事件。
type OrderProducerAdapter struct {
	writer *kafka.Writer
}

func NewOrderProducerAdapter(writer *kafka.Writer) *OrderProducerAdapter {
	return &OrderProducerAdapter{writer: writer}
}

// PublishOrderCreated 以订单 ID 为 key 发布事件，
// 保证同一订单的事件落在同一分区，对消费者保持发布顺序。
func (p *OrderProducerAdapter) PublishOrderCreated(ctx context.Context, event *domain.OrderCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal order-created event")
	}

	key := []byte(strconv.FormatInt(event.ID, 10))
	if err := mq.ProduceMessage(ctx, p.writer, key, payload); err != nil {
		return errors.Wrap(err, "failed to produce order-created event")
	}
	return nil
}

func (p *OrderProducerAdapter) Close() error {
	return p.writer.Close()
}
