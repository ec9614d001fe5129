package repository

import (
	"context"

	"electromart/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

// DI
func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Favorite, error) {
	var favs []model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&favs).Error
	if err != nil {
		return []model.Favorite{}, err
	}
	return favs, nil
}

// 二重追加は無視（冪等）。queueのflush再送に耐える。
func (r *FavoriteGormRepository) Add(ctx context.Context, userID int64, partID int64) error {
	fav := model.Favorite{
		UserID: userID,
		PartID: partID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

// 無い場合もエラーにしない（冪等）。
func (r *FavoriteGormRepository) Remove(ctx context.Context, userID int64, partID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND refaccion_id = ?", userID, partID).
		Delete(&model.Favorite{}).Error
}
