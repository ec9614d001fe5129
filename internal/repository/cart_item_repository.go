package repository

import (
	"context"

	"electromart/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一refacciónはプラス
	UpsertByCartAndPart(ctx context.Context, cartID int64, partID int64, addQty int64, unitPriceSnapshot decimal.Decimal) error
	DeleteByPart(ctx context.Context, cartID int64, partID int64) error
}
