package repository

import (
	"context"
	"errors"
	"strings"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"

	"gorm.io/gorm"
)

type PartGormRepository struct {
	db *gorm.DB
}

// DI
func NewPartGormRepository(db *gorm.DB) *PartGormRepository {
	return &PartGormRepository{db: db}
}

// 公開refacciónのみを、検索/絞り込み/ソート/ページング付きで返す。
func (r *PartGormRepository) ListPublic(ctx context.Context, q repo.PartListQuery) ([]model.Part, int64, error) {
	var parts []model.Part
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Part{})

	// 公開（is_active=true）かつ削除されていないものだけ
	tx = tx.Where("is_active = ?", true)

	// q はnombreとcodigo_parteを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("nombre ILIKE ? OR codigo_parte ILIKE ?", like, like)
	}

	if q.BrandID != nil {
		tx = tx.Where("marca_id = ?", *q.BrandID)
	}
	if q.CategoryID != nil {
		tx = tx.Where("categoria_id = ?", *q.CategoryID)
	}
	if q.Condition != "" {
		tx = tx.Where("estado = ?", q.Condition)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("precio >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("precio <= ?", *q.MaxPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Part{}, 0, err
	}

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("precio asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("precio desc").Order("id desc")
	default:
		tx = tx.Order("fecha_ingreso desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&parts).Error; err != nil {
		return []model.Part{}, 0, err
	}

	return parts, total, nil
}

// IDでrefacciónを取得
func (r *PartGormRepository) FindByID(ctx context.Context, id int64) (model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Part{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Part{}, err
	}
	return p, nil
}

// codigo_parteで取得
func (r *PartGormRepository) FindByPartCode(ctx context.Context, code string) (model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).Where("codigo_parte = ?", code).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Part{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Part{}, err
	}
	return p, nil
}

// POS検索。在庫の有無は問わない（画面側で表示する）。
func (r *PartGormRepository) SearchForPOS(ctx context.Context, q string, limit int) ([]model.Part, error) {
	like := "%" + strings.TrimSpace(q) + "%"

	var parts []model.Part
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("nombre ILIKE ? OR codigo_parte ILIKE ?", like, like).
		Order("nombre asc").
		Limit(limit).
		Find(&parts).Error
	if err != nil {
		return []model.Part{}, err
	}
	return parts, nil
}

// refacciónの作成
func (r *PartGormRepository) Create(ctx context.Context, p model.Part) (model.Part, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Part{}, err
	}
	return p, nil
}

// refacciónの更新
func (r *PartGormRepository) Update(ctx context.Context, p model.Part) error {
	res := r.db.WithContext(ctx).Model(&model.Part{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"codigo_parte":   p.PartCode,
		"nombre":         p.Name,
		"descripcion":    p.Description,
		"marca_id":       p.BrandID,
		"categoria_id":   p.CategoryID,
		"precio":         p.Price,
		"existencias":    p.Stock,
		"estado":         p.Condition,
		"compatibilidad": p.Compatibility,
		"imagen":         p.Image,
		"is_active":      p.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// refacción削除（soft delete）
func (r *PartGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Part{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
