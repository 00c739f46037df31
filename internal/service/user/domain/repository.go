package domain

import "context"

// UserRepository 定义了用户聚合的持久化接口。
type UserRepository interface {
	// Create 持久化一个新用户并回填存储分配的 ID。
	Create(ctx context.Context, user *User) error

	// FindByID 根据 ID 查找用户，不存在时返回 ErrUserNotFound。
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindAll 返回全部用户。
	FindAll(ctx context.Context) ([]*User, error)
}
