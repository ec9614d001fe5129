package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文（pedido）の状態。
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CRE" // Creado
	OrderStatusPaid      OrderStatus = "PAG" // Pagado
	OrderStatusShipped   OrderStatus = "ENV" // Enviado
	OrderStatusDelivered OrderStatus = "ENT" // Entregado
	OrderStatusCanceled  OrderStatus = "CAN" // Cancelado
)

type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	Status         OrderStatus     `gorm:"type:varchar(3);not null;index;column:estado" json:"estado"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	IdempotencyKey string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime;column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
}

func (Order) TableName() string { return "pedidos" }
