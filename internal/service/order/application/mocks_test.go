package application

import (
	"context"
	"sync"

	"orderflow/internal/service/order/domain"
)

// mockOrderRepo 是一个基于内存 map 的 OrderRepository 测试替身。
// 存取都走拷贝，模拟真实存储里记录与内存对象相互隔离的行为。
type mockOrderRepo struct {
	mu        sync.Mutex
	orders    map[int64]domain.Order
	nextID    int64
	findCalls int
	saveCalls int

	createErr error
	findErr   error
	saveErr   error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[int64]domain.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	order.ID = m.nextID
	m.orders[order.ID] = *order
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

func (m *mockOrderRepo) FindAll(_ context.Context) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := make([]*domain.Order, 0, len(m.orders))
	for id := range m.orders {
		order := m.orders[id]
		orders = append(orders, &order)
	}
	return orders, nil
}

func (m *mockOrderRepo) Save(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders[order.ID] = *order
	return nil
}

// stored 返回存储中的当前状态，绕过一切缓存。
func (m *mockOrderRepo) stored(id int64) (domain.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	return order, ok
}

type mockProducer struct {
	mu     sync.Mutex
	events []*domain.OrderCreatedEvent
	err    error
}

func (m *mockProducer) PublishOrderCreated(_ context.Context, event *domain.OrderCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockProducer) published() []*domain.OrderCreatedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.OrderCreatedEvent(nil), m.events...)
}
