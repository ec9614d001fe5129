package usecase

import (
	"context"
	"net/http"
	"strings"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"
)

// マスタ系（marca/categoría/proveedor）のロジック。
type TaxonomyUsecase struct {
	brandRepo    repo.BrandRepository
	categoryRepo repo.CategoryRepository
	supplierRepo repo.SupplierRepository
}

// DI
func NewTaxonomyUsecase(
	brandRepo repo.BrandRepository,
	categoryRepo repo.CategoryRepository,
	supplierRepo repo.SupplierRepository,
) *TaxonomyUsecase {
	return &TaxonomyUsecase{
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

func (u *TaxonomyUsecase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	brands, err := u.brandRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return brands, nil
}

func (u *TaxonomyUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}

func (u *TaxonomyUsecase) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	sups, err := u.supplierRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return sups, nil
}

type BrandInput struct {
	Name    string
	Country string
}

func (u *TaxonomyUsecase) AdminCreateBrand(ctx context.Context, adminUserID int64, in BrandInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "nombre required")
	}

	b, err := u.brandRepo.Create(ctx, model.Brand{
		Name:    strings.TrimSpace(in.Name),
		Country: strings.TrimSpace(in.Country),
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b.ID, nil
}

func (u *TaxonomyUsecase) AdminUpdateBrand(ctx context.Context, adminUserID int64, brandID int64, in BrandInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if brandID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "nombre required")
	}

	err := u.brandRepo.Update(ctx, model.Brand{
		ID:      brandID,
		Name:    strings.TrimSpace(in.Name),
		Country: strings.TrimSpace(in.Country),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *TaxonomyUsecase) AdminDeleteBrand(ctx context.Context, adminUserID int64, brandID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if brandID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.brandRepo.Delete(ctx, brandID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type CategoryInput struct {
	Name        string
	Description string
}

func (u *TaxonomyUsecase) AdminCreateCategory(ctx context.Context, adminUserID int64, in CategoryInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "nombre required")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c.ID, nil
}

func (u *TaxonomyUsecase) AdminUpdateCategory(ctx context.Context, adminUserID int64, categoryID int64, in CategoryInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "nombre required")
	}

	err := u.categoryRepo.Update(ctx, model.Category{
		ID:          categoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *TaxonomyUsecase) AdminDeleteCategory(ctx context.Context, adminUserID int64, categoryID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.categoryRepo.Delete(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type SupplierInput struct {
	Name    string
	Contact string
	Phone   string
	Email   string
	Address string
}

func (u *TaxonomyUsecase) AdminCreateSupplier(ctx context.Context, adminUserID int64, in SupplierInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "nombre required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "correo_electronico required")
	}

	s, err := u.supplierRepo.Create(ctx, model.Supplier{
		Name:    strings.TrimSpace(in.Name),
		Contact: strings.TrimSpace(in.Contact),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Address: in.Address,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s.ID, nil
}

func (u *TaxonomyUsecase) AdminUpdateSupplier(ctx context.Context, adminUserID int64, supplierID int64, in SupplierInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if supplierID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "nombre required")
	}

	err := u.supplierRepo.Update(ctx, model.Supplier{
		ID:      supplierID,
		Name:    strings.TrimSpace(in.Name),
		Contact: strings.TrimSpace(in.Contact),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Address: in.Address,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *TaxonomyUsecase) AdminDeleteSupplier(ctx context.Context, adminUserID int64, supplierID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if supplierID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.supplierRepo.Delete(ctx, supplierID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
