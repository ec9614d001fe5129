package repository

import (
	"context"

	"electromart/internal/domain/model"
)

type BlogRepository interface {
	List(ctx context.Context, category string, page int, limit int) ([]model.BlogPost, int64, error)
	FindBySlug(ctx context.Context, slug string) (model.BlogPost, error)
	Create(ctx context.Context, p model.BlogPost) (model.BlogPost, error)
	Update(ctx context.Context, p model.BlogPost) error
	Delete(ctx context.Context, id int64) error
}
