package interfaces

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/order/application"
	"orderflow/internal/service/order/domain"
)

// ResultConsumerAdapter 监听 order-result 主题并驱动结果应用。
//
// 消费语义：处理失败只记录日志，消息仍然提交——这条链路上没有重试
// 也没有死信，错误被降级为一次记录在案的丢弃，消费循环永不中断。
type ResultConsumerAdapter struct {
	reader  *kafka.Reader
	appSvc  *application.OrderApplicationService
	wg      sync.WaitGroup
	stopped bool
}

func NewResultConsumerAdapter(reader *kafka.Reader, appSvc *application.OrderApplicationService) *ResultConsumerAdapter {
	return &ResultConsumerAdapter{
		reader: reader,
		appSvc: appSvc,
	}
}

// Start 开始监听。这是一个长期运行的方法。
func (a *ResultConsumerAdapter) Start(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		logger.Ctx(ctx).Info().Str("topic", a.reader.Config().Topic).Msg("result consumer started")
		for {
			if a.stopped {
				return
			}
			// 使用 FetchMessage 而不是 ReadMessage，以便手动控制提交时机
			msg, err := a.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Ctx(ctx).Info().Msg("result consumer shutting down")
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
					Msg("failed to apply order result, message dropped")
			} else {
				mq.MessagesConsumed.WithLabelValues(msg.Topic, "ok").Inc()
			}

			// 无论成败都提交 Offset：失败的消息已被记录并放弃
			if err := a.reader.CommitMessages(ctx, msg); err != nil {
				logger.Ctx(ctx).Error().Err(err).Msg("failed to commit messages")
			}
		}
	}()
}

// Stop 优雅地停止消费者。
func (a *ResultConsumerAdapter) Stop(ctx context.Context) {
	a.stopped = true
	a.reader.Close()
	a.wg.Wait()
	logger.Ctx(ctx).Info().Msg("result consumer stopped")
}

func (a *ResultConsumerAdapter) processMessage(ctx context.Context, msg kafka.Message) error {
	var event domain.OrderResultEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}
	return a.appSvc.ApplyOrderResult(ctx, &event)
}
