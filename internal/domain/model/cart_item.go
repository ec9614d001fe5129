package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。追加時点の価格を必ず保存。
type CartItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID            int64           `gorm:"not null;index" json:"cart_id"`
	PartID            int64           `gorm:"not null;index;column:refaccion_id" json:"refaccion_id"`
	Quantity          int64           `gorm:"not null;column:cantidad" json:"cantidad"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
