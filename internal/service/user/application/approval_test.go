package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"orderflow/internal/service/user/domain"
)

type mockUserRepo struct {
	users   map[int64]*domain.User
	findErr error
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

type mockNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockNotifier) NotifyUser(_ context.Context, _ *domain.User, _ *domain.OrderCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

type mockResultProducer struct {
	mu      sync.Mutex
	results []*domain.OrderResultEvent
	err     error
}

func (m *mockResultProducer) PublishOrderResult(_ context.Context, event *domain.OrderResultEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.results = append(m.results, event)
	return nil
}

func newApprovalFixture(users ...*domain.User) (*ApprovalService, *mockUserRepo, *mockNotifier, *mockResultProducer) {
	repo := &mockUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	notifier := &mockNotifier{}
	results := &mockResultProducer{}
	svc := NewApprovalService(repo, notifier, results, otel.Tracer("test"))
	return svc, repo, notifier, results
}

func TestHandleOrderCreated_ApprovesExistingUserAndNotifiesOnce(t *testing.T) {
	svc, _, notifier, results := newApprovalFixture(&domain.User{ID: 1, Name: "Alice"})

	event := &domain.OrderCreatedEvent{EventID: "evt-1", ID: 10, ProductID: 101, Status: domain.OrderStatusPending, UserID: 1}
	err := svc.HandleOrderCreated(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, 1, notifier.calls)
	require.Len(t, results.results, 1)
	assert.Equal(t, int64(10), results.results[0].ID)
	assert.Equal(t, domain.OrderStatusApproved, results.results[0].Status)
}

func TestHandleOrderCreated_RejectsWhenUserReferenceMissing(t *testing.T) {
	svc, _, notifier, results := newApprovalFixture()

	event := &domain.OrderCreatedEvent{EventID: "evt-2", ID: 11, ProductID: 101, Status: domain.OrderStatusPending}
	err := svc.HandleOrderCreated(context.Background(), event)
	require.NoError(t, err)

	assert.Zero(t, notifier.calls)
	require.Len(t, results.results, 1)
	assert.Equal(t, domain.OrderStatusRejected, results.results[0].Status)
}

func TestHandleOrderCreated_RejectsWhenUserNotFound(t *testing.T) {
	svc, _, notifier, results := newApprovalFixture()

	event := &domain.OrderCreatedEvent{EventID: "evt-3", ID: 12, ProductID: 102, Status: domain.OrderStatusPending, UserID: 999}
	err := svc.HandleOrderCreated(context.Background(), event)
	require.NoError(t, err)

	assert.Zero(t, notifier.calls)
	require.Len(t, results.results, 1)
	assert.Equal(t, domain.OrderStatusRejected, results.results[0].Status)
}

func TestHandleOrderCreated_RejectsOnUnexpectedLookupError(t *testing.T) {
	svc, repo, notifier, results := newApprovalFixture(&domain.User{ID: 3, Name: "Carol"})
	repo.findErr = errors.New("connection refused")

	// 解析过程中的任何错误都不跨出处理器边界，而是折叠成 REJECTED
	event := &domain.OrderCreatedEvent{EventID: "evt-4", ID: 13, ProductID: 103, Status: domain.OrderStatusPending, UserID: 3}
	err := svc.HandleOrderCreated(context.Background(), event)
	require.NoError(t, err)

	assert.Zero(t, notifier.calls)
	require.Len(t, results.results, 1)
	assert.Equal(t, domain.OrderStatusRejected, results.results[0].Status)
}

func TestHandleOrderCreated_NotifyFailureDoesNotChangeDecision(t *testing.T) {
	svc, _, notifier, results := newApprovalFixture(&domain.User{ID: 1, Name: "Alice"})
	notifier.err = errors.New("notification channel down")

	event := &domain.OrderCreatedEvent{EventID: "evt-5", ID: 14, ProductID: 104, Status: domain.OrderStatusPending, UserID: 1}
	err := svc.HandleOrderCreated(context.Background(), event)
	require.NoError(t, err)

	// 通知失败既不改变决定，也不拦截必须发生的结果发布
	require.Len(t, results.results, 1)
	assert.Equal(t, domain.OrderStatusApproved, results.results[0].Status)
}

func TestHandleOrderCreated_PublishFailureIsSurfaced(t *testing.T) {
	svc, _, notifier, results := newApprovalFixture(&domain.User{ID: 1, Name: "Alice"})
	results.err = errors.New("broker unavailable")

	event := &domain.OrderCreatedEvent{EventID: "evt-6", ID: 15, ProductID: 105, Status: domain.OrderStatusPending, UserID: 1}
	err := svc.HandleOrderCreated(context.Background(), event)
	require.Error(t, err)
	assert.Equal(t, 1, notifier.calls)
}

func TestHandleOrderCreated_RedeliveryPublishesTwice(t *testing.T) {
	svc, _, notifier, results := newApprovalFixture(&domain.User{ID: 1, Name: "Alice"})

	// 通道是至少一次投递且本服务无去重键：同一消息重复消费就会重复决定、
	// 重复发布；其安全性由订单侧结果应用的幂等合并保证
	event := &domain.OrderCreatedEvent{EventID: "evt-7", ID: 16, ProductID: 106, Status: domain.OrderStatusPending, UserID: 1}
	require.NoError(t, svc.HandleOrderCreated(context.Background(), event))
	require.NoError(t, svc.HandleOrderCreated(context.Background(), event))

	require.Len(t, results.results, 2)
	assert.Equal(t, results.results[0].Status, results.results[1].Status)
	assert.Equal(t, 2, notifier.calls)
}
