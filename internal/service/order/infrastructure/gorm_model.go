package infrastructure

import "time"

// OrderModel 对应数据库中的 order_table 表。
type OrderModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ProductID int64  `gorm:"not null"`
	UserID    int64  `gorm:"not null;index"`
	Status    string `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名
func (OrderModel) TableName() string {
	return "order_table"
}
