package interfaces

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/user/application"
	"orderflow/internal/service/user/domain"
)

// OrderConsumerAdapter 监听 order-created 主题并驱动审批服务。
//
// 审批服务把一切业务失败折叠成 REJECTED，这里能看到的错误只剩
// 反序列化失败和结果发布失败两类；两者都只记日志并提交消息，
// 消费循环永不因单条消息而中断。
type OrderConsumerAdapter struct {
	reader  *kafka.Reader
	appSvc  *application.ApprovalService
	wg      sync.WaitGroup
	stopped bool
}

func NewOrderConsumerAdapter(reader *kafka.Reader, appSvc *application.ApprovalService) *OrderConsumerAdapter {
	return &OrderConsumerAdapter{
		reader: reader,
		appSvc: appSvc,
	}
}

// Start 开始监听。这是一个长期运行的方法。
func (a *OrderConsumerAdapter) Start(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		logger.Ctx(ctx).Info().Str("topic", a.reader.Config().Topic).Msg("order consumer started")
		for {
			if a.stopped {
				return
			}
			// 使用 FetchMessage 而不是 ReadMessage，以便手动控制提交时机
			msg, err := a.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Ctx(ctx).Info().Msg("order consumer shutting down")
					return
				}
				logger.Ctx(ctx).Error().Err(err).Msg("could not read message, retrying")
				time.Sleep(1 * time.Second) // 避免快速失败循环
				continue
			}

			msgCtx := mq.ExtractTraceContext(ctx, msg.Headers)
			if err := a.processMessage(msgCtx, msg); err != nil {
				mq.MessagesConsumed.WithLabelValues(msg.Topic, "error").Inc()
				logger.Ctx(msgCtx).Error().Err(err).
					Str("key", string(msg.Key)).
					Msg("failed to process order-created message")
			} else {
				mq.MessagesConsumed.WithLabelValues(msg.Topic, "ok").Inc()
			}

			if err := a.reader.CommitMessages(ctx, msg); err != nil {
				logger.Ctx(ctx).Error().Err(err).Msg("failed to commit messages")
			}
		}
	}()
}

// Stop 优雅地停止消费者。
func (a *OrderConsumerAdapter) Stop(ctx context.Context) {
	a.stopped = true
	a.reader.Close()
	a.wg.Wait()
	logger.Ctx(ctx).Info().Msg("order consumer stopped")
}

func (a *OrderConsumerAdapter) processMessage(ctx context.Context, msg kafka.Message) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}
	return a.appSvc.HandleOrderCreated(ctx, &event)
}
