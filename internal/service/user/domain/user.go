package domain

import "time"

// User 是用户聚合的根实体。
// Password 永远不向外暴露；Orders 在存储侧只是一个反向查询的便利集合，
// 不构成所有权关系，删除或修改用户不得级联到订单。
type User struct {
	ID        int64
	Name      string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建一个新用户，三个字段都是必填。
func NewUser(name, username, password string) (*User, error) {
	if name == "" || username == "" || password == "" {
		return nil, ErrMissingUserFields
	}
	now := time.Now()
	return &User{
		Name:      name,
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
