package application

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/order/domain"
	"orderflow/internal/service/order/domain/port"
)

// OrderApplicationService 编排订单的创建与读取流程。
// 所有依赖通过构造函数注入，没有任何全局注册表。
type OrderApplicationService struct {
	orderRepo domain.OrderRepository
	cache     port.SnapshotCache
	producer  port.OrderEventProducer
	tracer    trace.Tracer
}

func NewOrderApplicationService(orderRepo domain.OrderRepository, cache port.SnapshotCache, producer port.OrderEventProducer, tracer trace.Tracer) *OrderApplicationService {
	return &OrderApplicationService{
		orderRepo: orderRepo,
		cache:     cache,
		producer:  producer,
		tracer:    tracer,
	}
}

// CreateOrder 持久化一个 PENDING 状态的新订单，并向 order-created 主题
// 发布一条携带完整记录的事件，然后立即返回持久化结果。
//
// 持久化失败直接返回错误。持久化成功但发布失败时，订单已经存在却永远
// 不会被审批——这里没有补偿重试，只记录日志并照常返回订单。
func (s *OrderApplicationService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.CreateOrder")
	defer span.End()

	order, err := domain.NewOrder(req.ProductID, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order validation failed")
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist order")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.Int64("user.id", order.UserID),
	)

	event := &domain.OrderCreatedEvent{
		EventID:   uuid.New().String(),
		ID:        order.ID,
		ProductID: order.ProductID,
		Status:    order.Status,
		UserID:    order.UserID,
	}
	if err := s.producer.PublishOrderCreated(ctx, event); err != nil {
		// 订单已落库但事件没发出去：这笔订单会一直停留在 PENDING。
		span.RecordError(err)
		logger.Ctx(ctx).Error().Err(err).
			Int64("order_id", order.ID).
			Msg("order persisted but order-created publish failed, approval will never run")
		return toOrderResponse(order), nil
	}

	span.AddEvent("order-created event published")
	logger.Ctx(ctx).Info().
		Int64("order_id", order.ID).
		Str("event_id", event.EventID).
		Msg("order created, awaiting approval")
	return toOrderResponse(order), nil
}

// GetOrder 走读穿缓存：命中直接返回快照，未命中读存储并回填缓存。
// 返回的可能是过期快照——结果应用覆盖存储后不会清缓存。
func (s *OrderApplicationService) GetOrder(ctx context.Context, id int64) (*OrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.GetOrder")
	defer span.End()
	span.SetAttributes(attribute.Int64("order.id", id))

	if order, ok := s.cache.Get(ctx, id); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return toOrderResponse(order), nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.cache.Put(ctx, id, order)
	return toOrderResponse(order), nil
}

// ListOrders 总是绕过缓存直读存储，列表视图用一致性换速度。
func (s *OrderApplicationService) ListOrders(ctx context.Context) ([]*OrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.ListOrders")
	defer span.End()

	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	return resp, nil
}
