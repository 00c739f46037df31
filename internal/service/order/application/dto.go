package application

import (
	"time"

	"orderflow/internal/service/order/domain"
)

// CreateOrderRequest 是创建订单的入站 DTO，对应 REST 入口的请求体。
type CreateOrderRequest struct {
	ProductID int64 `json:"productId"`
	UserID    int64 `json:"userId"`
}

// OrderResponse 是订单的出站视图。
type OrderResponse struct {
	ID        int64         `json:"id"`
	ProductID int64         `json:"productId"`
	UserID    int64         `json:"userId"`
	Status    domain.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func toOrderResponse(order *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:        order.ID,
		ProductID: order.ProductID,
		UserID:    order.UserID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}
