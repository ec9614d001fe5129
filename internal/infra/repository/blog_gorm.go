package repository

import (
	"context"
	"errors"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"

	"gorm.io/gorm"
)

type BlogGormRepository struct {
	db *gorm.DB
}

// DI
func NewBlogGormRepository(db *gorm.DB) *BlogGormRepository {
	return &BlogGormRepository{db: db}
}

func (r *BlogGormRepository) List(ctx context.Context, category string, page int, limit int) ([]model.BlogPost, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.BlogPost{})

	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.BlogPost{}, 0, err
	}

	var posts []model.BlogPost
	offset := (page - 1) * limit
	err := tx.Order("date desc").Order("id desc").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return []model.BlogPost{}, 0, err
	}
	return posts, total, nil
}

func (r *BlogGormRepository) FindBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	var p model.BlogPost
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BlogPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, err
	}
	return p, nil
}

func (r *BlogGormRepository) Create(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.BlogPost{}, err
	}
	return p, nil
}

func (r *BlogGormRepository) Update(ctx context.Context, p model.BlogPost) error {
	res := r.db.WithContext(ctx).Model(&model.BlogPost{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":       p.Title,
		"description": p.Description,
		"image":       p.Image,
		"slug":        p.Slug,
		"category":    p.Category,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BlogGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.BlogPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
