package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64           `gorm:"not null;index;column:pedido_id" json:"pedido_id"`
	PartID            int64           `gorm:"not null;index;column:refaccion_id" json:"refaccion_id"`
	PartNameSnapshot  string          `gorm:"type:varchar(200);not null" json:"part_name_snapshot"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null;column:precio_unitario" json:"precio_unitario"`
	Quantity          int64           `gorm:"not null;column:cantidad" json:"cantidad"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string { return "pedido_items" }
