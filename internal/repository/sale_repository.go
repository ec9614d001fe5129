package repository

import (
	"context"
	"time"

	"electromart/internal/domain/model"
)

type SaleListFilter struct {
	Page   int
	Limit  int
	PartID *int64
	From   *time.Time
	To     *time.Time
}

type SaleRepository interface {
	Create(ctx context.Context, s model.Sale) (model.Sale, error)
	FindByID(ctx context.Context, id int64) (model.Sale, error)
	List(ctx context.Context, f SaleListFilter) ([]model.Sale, int64, error)

	CreateReturn(ctx context.Context, r model.Return) (model.Return, error)
	ListReturns(ctx context.Context, page int, limit int) ([]model.Return, int64, error)
}
