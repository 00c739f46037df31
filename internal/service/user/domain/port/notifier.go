package port

import (
	"context"

	"orderflow/internal/service/user/domain"
)

// Notifier 是审批通过后的通知出站端口。
// 通知是即发即忘的副作用：发送失败不改变已经做出的决定，
// 也不阻止随后的结果发布。
type Notifier interface {
	NotifyUser(ctx context.Context, user *domain.User, order *domain.OrderCreatedEvent) error
}
