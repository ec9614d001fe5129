package repository

import (
	"context"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) SetStock(ctx context.Context, partID int64, newStock int64) error {
	res := r.db.WithContext(ctx).Model(&model.Part{}).
		Where("id = ?", partID).
		Update("existencias", newStock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 条件付きUPDATEで在庫が足りるときだけ減算。足りなければfalse。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, partID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Part{}).
		Where("id = ? AND existencias >= ?", partID, qty).
		Update("existencias", gorm.Expr("existencias - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// 返品・キャンセルの在庫戻し
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, partID int64, qty int64) error {
	res := r.db.WithContext(ctx).Model(&model.Part{}).
		Where("id = ?", partID).
		Update("existencias", gorm.Expr("existencias + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	return r.db.WithContext(ctx).Create(&adjustment).Error
}
