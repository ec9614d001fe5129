package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 支払い（pago）の状態。
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PEN" // Pendiente
	PaymentStatusApproved PaymentStatus = "APR" // Aprobado
	PaymentStatusRejected PaymentStatus = "REC" // Rechazado
	PaymentStatusCanceled PaymentStatus = "CAN" // Cancelado
	PaymentStatusRefunded PaymentStatus = "REE" // Reembolsado
)

// 支払い（pago）。pedidoと1対1。
type Payment struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       *int64          `gorm:"uniqueIndex;column:pedido_id" json:"pedido_id,omitempty"`
	UserID        int64           `gorm:"not null;index" json:"user_id"`
	Status        PaymentStatus   `gorm:"type:varchar(3);not null;index" json:"status"`
	StatusDetail  string          `gorm:"type:varchar(255)" json:"status_detail"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'MXN'" json:"currency"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method"`
	ExternalRef   string          `gorm:"type:varchar(255);index" json:"external_ref"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime;column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
	ApprovedAt    *time.Time      `gorm:"column:fecha_aprobacion" json:"fecha_aprobacion,omitempty"`
}

func (Payment) TableName() string { return "pagos" }
