package domain

import "errors"

var (
	// ErrOrderNotFound 表示订单在存储中不存在。
	ErrOrderNotFound = errors.New("order not found")

	// 创建订单时的校验错误，只在同步路径上返回给调用方，不会进入消息通道。
	ErrMissingProductID = errors.New("productId is required")
	ErrMissingUserID    = errors.New("userId is required")
)

// IsValidationError 判断错误是否属于创建校验失败。
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingProductID) || errors.Is(err, ErrMissingUserID)
}
