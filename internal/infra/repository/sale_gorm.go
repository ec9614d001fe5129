package repository

import (
	"context"
	"errors"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

// DI
func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Sale{}, err
	}
	return s, nil
}

func (r *SaleGormRepository) FindByID(ctx context.Context, id int64) (model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sale{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Sale{}, err
	}
	return s, nil
}

func (r *SaleGormRepository) List(ctx context.Context, f repo.SaleListFilter) ([]model.Sale, int64, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if f.PartID != nil {
		q = q.Where("refaccion_id = ?", *f.PartID)
	}
	if f.From != nil {
		q = q.Where("fecha_venta >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("fecha_venta <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	err := q.
		Order("fecha_venta desc, id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r *SaleGormRepository) CreateReturn(ctx context.Context, ret model.Return) (model.Return, error) {
	if err := r.db.WithContext(ctx).Create(&ret).Error; err != nil {
		return model.Return{}, err
	}
	return ret, nil
}

func (r *SaleGormRepository) ListReturns(ctx context.Context, page int, limit int) ([]model.Return, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&model.Return{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rets []model.Return
	err := q.
		Order("fecha_devolucion desc, id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rets).Error
	if err != nil {
		return nil, 0, err
	}
	return rets, total, nil
}
