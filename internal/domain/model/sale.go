package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// POS売上（venta）。1明細=1レコード。
type Sale struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64          `gorm:"index" json:"user_id,omitempty"`
	BrandID   int64           `gorm:"not null;index;column:marca_id" json:"marca_id"`
	PartID    int64           `gorm:"not null;index;column:refaccion_id" json:"refaccion_id"`
	Quantity  int64           `gorm:"not null;column:cantidad" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;column:precio_unitario" json:"precio_unitario"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	SoldAt    time.Time       `gorm:"not null;autoCreateTime;column:fecha_venta" json:"fecha_venta"`
}

func (Sale) TableName() string { return "ventas" }

// 返品（devolución）。元のventaに紐付く。
type Return struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID    *int64          `gorm:"index;column:venta_id" json:"venta_id,omitempty"`
	BrandID   int64           `gorm:"not null;column:marca_id" json:"marca_id"`
	PartID    int64           `gorm:"not null;index;column:refaccion_id" json:"refaccion_id"`
	Quantity  int64           `gorm:"not null;column:cantidad" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;column:precio_unitario" json:"precio_unitario"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Reason    string          `gorm:"type:varchar(500);column:motivo" json:"motivo"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime;column:fecha_devolucion" json:"fecha_devolucion"`
}

func (Return) TableName() string { return "devoluciones" }
