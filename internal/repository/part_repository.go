package repository

import (
	"context"
	"errors"

	"electromart/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 公開一覧・検索の条件
type PartListQuery struct {
	Page       int
	Limit      int
	Q          string
	BrandID    *int64
	CategoryID *int64
	Condition  string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

// 部品（refacción）の永続化だけを約束。
type PartRepository interface {
	ListPublic(ctx context.Context, q PartListQuery) ([]model.Part, int64, error)
	FindByID(ctx context.Context, id int64) (model.Part, error)
	FindByPartCode(ctx context.Context, code string) (model.Part, error)
	// POS検索：名前またはcodigo_parteの部分一致
	SearchForPOS(ctx context.Context, q string, limit int) ([]model.Part, error)

	Create(ctx context.Context, p model.Part) (model.Part, error)
	Update(ctx context.Context, p model.Part) error
	SoftDelete(ctx context.Context, id int64) error
}
