package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"orderflow/internal/service/order/domain"
	"orderflow/internal/service/order/infrastructure"
)

func newTestService(repo *mockOrderRepo, producer *mockProducer) *OrderApplicationService {
	cache := infrastructure.NewMemorySnapshotCache()
	return NewOrderApplicationService(repo, cache, producer, otel.Tracer("test"))
}

func TestCreateOrder_PersistsPendingAndPublishesOnce(t *testing.T) {
	repo := newMockOrderRepo()
	producer := &mockProducer{}
	svc := newTestService(repo, producer)

	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{ProductID: 101, UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)

	stored, ok := repo.stored(resp.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, stored.Status)

	events := producer.published()
	require.Len(t, events, 1)
	assert.Equal(t, resp.ID, events[0].ID)
	assert.Equal(t, int64(101), events[0].ProductID)
	assert.Equal(t, int64(1), events[0].UserID)
	assert.Equal(t, domain.StatusPending, events[0].Status)
	assert.NotEmpty(t, events[0].EventID)
}

func TestCreateOrder_ValidationNeverReachesStoreOrChannel(t *testing.T) {
	tests := []struct {
		name string
		req  *CreateOrderRequest
	}{
		{"missing productId", &CreateOrderRequest{UserID: 1}},
		{"missing userId", &CreateOrderRequest{ProductID: 101}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockOrderRepo()
			producer := &mockProducer{}
			svc := newTestService(repo, producer)

			_, err := svc.CreateOrder(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
			assert.Empty(t, repo.orders)
			assert.Empty(t, producer.published())
		})
	}
}

func TestCreateOrder_PersistFailureSurfacesWithoutPublish(t *testing.T) {
	repo := newMockOrderRepo()
	repo.createErr = errors.New("connection reset")
	producer := &mockProducer{}
	svc := newTestService(repo, producer)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{ProductID: 101, UserID: 1})
	require.Error(t, err)
	assert.Empty(t, producer.published())
}

func TestCreateOrder_PublishFailureStillReturnsPersistedOrder(t *testing.T) {
	repo := newMockOrderRepo()
	producer := &mockProducer{err: errors.New("broker unavailable")}
	svc := newTestService(repo, producer)

	// 发布失败不回滚也不报错：订单落库成功就返回，它会一直停留在 PENDING
	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{ProductID: 101, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Status)

	stored, ok := repo.stored(resp.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestGetOrder_ReadThroughPopulatesCacheOnce(t *testing.T) {
	repo := newMockOrderRepo()
	producer := &mockProducer{}
	svc := newTestService(repo, producer)

	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{ProductID: 101, UserID: 1})
	require.NoError(t, err)

	first, err := svc.GetOrder(context.Background(), resp.ID)
	require.NoError(t, err)
	second, err := svc.GetOrder(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// 第一次读穿填充缓存，第二次命中缓存，存储只被查询一次
	assert.Equal(t, 1, repo.findCalls)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := newTestService(newMockOrderRepo(), &mockProducer{})

	_, err := svc.GetOrder(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListOrders_AlwaysBypassesCache(t *testing.T) {
	repo := newMockOrderRepo()
	producer := &mockProducer{}
	svc := newTestService(repo, producer)

	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{ProductID: 101, UserID: 1})
	require.NoError(t, err)

	// 读一次让缓存里留下 PENDING 快照
	_, err = svc.GetOrder(context.Background(), resp.ID)
	require.NoError(t, err)

	// 绕过服务直接改存储，模拟结果应用方的写入
	require.NoError(t, svc.ApplyOrderResult(context.Background(), &domain.OrderResultEvent{ID: resp.ID, Status: domain.StatusApproved}))

	list, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	// 列表绕过缓存，看到的是存储里的新状态
	assert.Equal(t, domain.StatusApproved, list[0].Status)
}
