package domain

import "errors"

var (
	// ErrUserNotFound 表示用户在存储中不存在。
	ErrUserNotFound = errors.New("user not found")

	ErrMissingUserFields = errors.New("name, username and password are required")
)
