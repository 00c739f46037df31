package infrastructure

import "orderflow/internal/service/order/domain"

func toDomainOrder(m *OrderModel) *domain.Order {
	return &domain.Order{
		ID:        m.ID,
		ProductID: m.ProductID,
		UserID:    m.UserID,
		Status:    domain.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toOrderModel(o *domain.Order) *OrderModel {
	return &OrderModel{
		ID:        o.ID,
		ProductID: o.ProductID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
