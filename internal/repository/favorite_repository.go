package repository

import (
	"context"

	"electromart/internal/domain/model"
)

type FavoriteRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Favorite, error)
	// 既にある場合は何もしない（冪等）
	Add(ctx context.Context, userID int64, partID int64) error
	Remove(ctx context.Context, userID int64, partID int64) error
}
