package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/user/domain"
)

// NotificationKafkaAdapter 实现 port.Notifier，向 notifications 主题发消息。
type NotificationKafkaAdapter struct {
	writer *kafka.Writer
}

func NewNotificationKafkaAdapter(writer *kafka.Writer) *NotificationKafkaAdapter {
	return &NotificationKafkaAdapter{writer: writer}
}

// NotifyUser 发送订单审批通过的通知。
func (a *NotificationKafkaAdapter) NotifyUser(ctx context.Context, user *domain.User, order *domain.OrderCreatedEvent) error {
	event := domain.NotificationEvent{
		UserID:  user.ID,
		Message: fmt.Sprintf("Hi %s, your order %d has been approved.", user.Name, order.ID),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal notification event")
	}

	key := []byte(strconv.FormatInt(user.ID, 10))
	return mq.ProduceMessage(ctx, a.writer, key, payload)
}

func (a *NotificationKafkaAdapter) Close() error {
	return a.writer.Close()
}
