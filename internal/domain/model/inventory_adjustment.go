package model

import "time"

// 在庫調整の履歴（棚卸・返品入庫など）。
type InventoryAdjustment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PartID      int64     `gorm:"not null;index;column:refaccion_id" json:"refaccion_id"`
	AdminUserID int64     `gorm:"not null" json:"admin_user_id"`
	Delta       int64     `gorm:"not null" json:"delta"`
	Reason      string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
