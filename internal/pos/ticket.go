package pos

import (
	"time"

	"github.com/shopspring/decimal"

	"electromart/internal/client"
)

// IVA 16%（税込価格から逆算する）
var ivaFactor = decimal.NewFromFloat(1.16)

// チケットの1明細。価格は追加時点のスナップショット。
type Line struct {
	PartID    int64
	PartCode  string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// 確定済みチケットの控え。以後変更されない。
type Receipt struct {
	SaleIDs   []int64
	Lines     []Line
	Total     decimal.Decimal
	Subtotal  decimal.Decimal
	VAT       decimal.Decimal
	Tendered  decimal.Decimal
	Change    decimal.Decimal
	CreatedAt time.Time
}

func newLineFromHit(hit client.PartHit) Line {
	return Line{
		PartID:    hit.ID,
		PartCode:  hit.PartCode,
		Name:      hit.Name,
		UnitPrice: hit.Price,
		Quantity:  1,
	}
}
