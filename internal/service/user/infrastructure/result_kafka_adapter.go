package infrastructure

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/user/domain"
)

// ResultKafkaAdapter 实现 port.ResultProducer，向 order-result 主题写审批结果。
type ResultKafkaAdapter struct {
	writer *kafka.Writer
}

func NewResultKafkaAdapter(writer *kafka.Writer) *ResultKafkaAdapter {
	return &ResultKafkaAdapter{writer: writer}
}

// PublishOrderResult 以订单 ID 为 key 发布结果，同一订单的结果保持分区有序。
func (a *ResultKafkaAdapter) PublishOrderResult(ctx context.Context, event *domain.OrderResultEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal order-result event")
	}

	key := []byte(strconv.FormatInt(event.ID, 10))
	if err := mq.ProduceMessage(ctx, a.writer, key, payload); err != nil {
		return errors.Wrap(err, "failed to produce order-result event")
	}
	return nil
}

func (a *ResultKafkaAdapter) Close() error {
	return a.writer.Close()
}
