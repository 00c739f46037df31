package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/user/domain"
	"orderflow/internal/service/user/domain/port"
)

// ApprovalService 对每条 order-created 事件做一次终态审批。
// 每条消息的状态机一跳到底：解析用户 → 决定 → （通过时）通知 → 发布结果。
type ApprovalService struct {
	userRepo domain.UserRepository
	notifier port.Notifier
	results  port.ResultProducer
	tracer   trace.Tracer
}

func NewApprovalService(userRepo domain.UserRepository, notifier port.Notifier, results port.ResultProducer, tracer trace.Tracer) *ApprovalService {
	return &ApprovalService{
		userRepo: userRepo,
		notifier: notifier,
		results:  results,
		tracer:   tracer,
	}
}

// decision 是审批的显式结局值。所有失败路径在 decide 内部就地收敛成
// REJECTED，不让任何错误跨出处理器边界。
type decision struct {
	status domain.OrderStatus
	user   *domain.User
	reason string
}

// HandleOrderCreated 处理一条订单创建事件。
//
// 无论走到哪条分支，每条被消费的消息都恰好发布一条 OrderResult——
// 流程必然终止，没有消息会被静默吞掉。返回的错误只可能来自结果发布
// 本身；决定过程中的一切失败都已折叠进 REJECTED 分支。
//
// 本服务不做去重：同一条消息被重复投递就会重复决定、重复发布，
// 其安全性依赖订单侧结果应用的幂等合并。
func (s *ApprovalService) HandleOrderCreated(ctx context.Context, event *domain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "app.HandleOrderCreated", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order.id", event.ID),
		attribute.Int64("user.id", event.UserID),
		attribute.String("event.id", event.EventID),
	)

	d := s.decide(ctx, event)
	span.SetAttributes(attribute.String("order.decision", string(d.status)))

	if d.status == domain.OrderStatusApproved {
		// 通知是即发即忘的：失败只记日志，不改变决定，也不拦住结果发布
		if err := s.notifier.NotifyUser(ctx, d.user, event); err != nil {
			span.RecordError(err)
			logger.Ctx(ctx).Warn().Err(err).
				Int64("order_id", event.ID).
				Int64("user_id", d.user.ID).
				Msg("failed to notify user, decision unchanged")
		}
	} else {
		logger.Ctx(ctx).Info().
			Int64("order_id", event.ID).
			Str("reason", d.reason).
			Msg("order rejected")
	}

	result := &domain.OrderResultEvent{ID: event.ID, Status: d.status}
	if err := s.results.PublishOrderResult(ctx, result); err != nil {
		span.RecordError(err)
		return errors.Wrapf(err, "failed to publish order result for order %d", event.ID)
	}

	span.AddEvent("order result published")
	return nil
}

// decide 把所有失败模式就地映射成 REJECTED：
// 缺失的用户引用、查无此人、以及解析过程中的任何其他错误。
func (s *ApprovalService) decide(ctx context.Context, event *domain.OrderCreatedEvent) decision {
	if event.UserID == 0 {
		return decision{status: domain.OrderStatusRejected, reason: "order carries no user reference"}
	}

	user, err := s.userRepo.FindByID(ctx, event.UserID)
	if err != nil {
		// not-found 和意外错误走同一条路：拒绝，而不是让错误向上冒泡
		return decision{status: domain.OrderStatusRejected, reason: err.Error()}
	}

	return decision{status: domain.OrderStatusApproved, user: user}
}
