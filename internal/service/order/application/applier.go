package application

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/order/domain"
)

// ApplyOrderResult 把审批服务发回的最终决定合并进订单记录。
//
// 订单不存在时记日志后丢弃，事件被永久抛弃（没有重试，也没有死信）。
// 合并本身是幂等的：同一个 (id, status) 应用任意多次，最终落库状态相同，
// 这正是上游允许重复投递的前提。读-改-写之间没有版本号保护，
// 并发应用同一订单时后写者胜出。
func (s *OrderApplicationService) ApplyOrderResult(ctx context.Context, event *domain.OrderResultEvent) error {
	ctx, span := s.tracer.Start(ctx, "app.ApplyOrderResult", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order.id", event.ID),
		attribute.String("order.result", string(event.Status)),
	)

	order, err := s.orderRepo.FindByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			logger.Ctx(ctx).Warn().
				Int64("order_id", event.ID).
				Str("status", string(event.Status)).
				Msg("order result for unknown order, dropping event")
			span.AddEvent("result dropped, order not found")
			return nil
		}
		span.RecordError(err)
		return err
	}

	order.ApplyResult(event.Status)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		span.RecordError(err)
		return err
	}

	logger.Ctx(ctx).Info().
		Int64("order_id", order.ID).
		Str("status", string(order.Status)).
		Msg("order result applied")
	return nil
}
