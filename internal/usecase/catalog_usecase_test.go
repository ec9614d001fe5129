package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"
	"electromart/internal/usecase"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CatPartRepoMock struct{ mock.Mock }

func (m *CatPartRepoMock) ListPublic(ctx context.Context, q repo.PartListQuery) ([]model.Part, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Part)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CatPartRepoMock) FindByID(ctx context.Context, id int64) (model.Part, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Part)
	return p, args.Error(1)
}

func (m *CatPartRepoMock) FindByPartCode(ctx context.Context, code string) (model.Part, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(model.Part)
	return p, args.Error(1)
}

func (m *CatPartRepoMock) SearchForPOS(ctx context.Context, q string, limit int) ([]model.Part, error) {
	args := m.Called(ctx, q, limit)
	items, _ := args.Get(0).([]model.Part)
	return items, args.Error(1)
}

func (m *CatPartRepoMock) Create(ctx context.Context, p model.Part) (model.Part, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Part)
	return created, args.Error(1)
}

func (m *CatPartRepoMock) Update(ctx context.Context, p model.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *CatPartRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CatBrandRepoMock struct{ mock.Mock }

func (m *CatBrandRepoMock) List(ctx context.Context) ([]model.Brand, error) {
	panic("not used in catalog tests")
}

func (m *CatBrandRepoMock) FindByID(ctx context.Context, id int64) (model.Brand, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Brand)
	return b, args.Error(1)
}

func (m *CatBrandRepoMock) Create(ctx context.Context, b model.Brand) (model.Brand, error) {
	panic("not used in catalog tests")
}

func (m *CatBrandRepoMock) Update(ctx context.Context, b model.Brand) error {
	panic("not used in catalog tests")
}

func (m *CatBrandRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in catalog tests")
}

type CatCategoryRepoMock struct{ mock.Mock }

func (m *CatCategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	panic("not used in catalog tests")
}

func (m *CatCategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CatCategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	panic("not used in catalog tests")
}

func (m *CatCategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	panic("not used in catalog tests")
}

func (m *CatCategoryRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in catalog tests")
}

type catalogFixture struct {
	partRepo     *CatPartRepoMock
	brandRepo    *CatBrandRepoMock
	categoryRepo *CatCategoryRepoMock
	auditRepo    *SalesAuditRepoMock
}

func newCatalogUsecase() (*usecase.CatalogUsecase, *catalogFixture) {
	f := &catalogFixture{
		partRepo:     new(CatPartRepoMock),
		brandRepo:    new(CatBrandRepoMock),
		categoryRepo: new(CatCategoryRepoMock),
		auditRepo:    new(SalesAuditRepoMock),
	}
	uc := usecase.NewCatalogUsecase(f.partRepo, new(SalesInventoryRepoMock), f.brandRepo, f.categoryRepo, f.auditRepo)
	return uc, f
}

// =====================
// Public: List / Detail
// =====================

func TestCatalogUsecase_ListPublicParts_InvalidPage(t *testing.T) {
	uc, _ := newCatalogUsecase()

	_, err := uc.ListPublicParts(context.Background(), usecase.ListPartsInput{Page: 0, Limit: 20})
	assertHTTPError(t, err, 400, "invalid page")
}

func TestCatalogUsecase_ListPublicParts_PriceRangeInverted(t *testing.T) {
	uc, _ := newCatalogUsecase()

	lo := decimal.RequireFromString("100.00")
	hi := decimal.RequireFromString("50.00")
	_, err := uc.ListPublicParts(context.Background(), usecase.ListPartsInput{
		Page: 1, Limit: 20, MinPrice: &lo, MaxPrice: &hi,
	})
	assertHTTPError(t, err, 400, "min_price must be <= max_price")
}

func TestCatalogUsecase_ListPublicParts_InvalidCondition(t *testing.T) {
	uc, _ := newCatalogUsecase()

	_, err := uc.ListPublicParts(context.Background(), usecase.ListPartsInput{Page: 1, Limit: 20, Condition: "XYZ"})
	assertHTTPError(t, err, 400, "invalid condition")
}

func TestCatalogUsecase_ListPublicParts_Success(t *testing.T) {
	ctx := context.Background()
	uc, f := newCatalogUsecase()

	in := usecase.ListPartsInput{Page: 1, Limit: 20, Q: "bujía", Sort: "price_asc"}
	q := repo.PartListQuery{Page: 1, Limit: 20, Q: "bujía", Sort: "price_asc"}

	f.partRepo.On("ListPublic", mock.Anything, q).Return([]model.Part{{ID: 1, IsActive: true}}, int64(1), nil)

	out, err := uc.ListPublicParts(ctx, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

func TestCatalogUsecase_GetPartDetail_InactiveIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc, f := newCatalogUsecase()

	f.partRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Part{ID: 5, IsActive: false}, nil)

	_, err := uc.GetPartDetail(ctx, 5)
	assertHTTPError(t, err, 404, "not found")
}

// =====================
// Admin: create
// =====================

func validCreateInput() usecase.AdminCreatePartInput {
	return usecase.AdminCreatePartInput{
		PartCode:   "NGK-BP6ES",
		Name:       "Bujía NGK",
		BrandID:    1,
		CategoryID: 2,
		Price:      decimal.RequireFromString("150.00"),
		Stock:      10,
		Condition:  string(model.PartConditionNew),
		IsActive:   true,
	}
}

func TestCatalogUsecase_AdminCreatePart_DuplicatePartCode(t *testing.T) {
	ctx := context.Background()
	uc, f := newCatalogUsecase()

	f.partRepo.On("FindByPartCode", mock.Anything, "NGK-BP6ES").Return(model.Part{ID: 9}, nil)

	_, err := uc.AdminCreatePart(ctx, 1, validCreateInput())
	assertHTTPError(t, err, 409, "codigo_parte already exists")
	f.partRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_AdminCreatePart_UnknownBrand(t *testing.T) {
	ctx := context.Background()
	uc, f := newCatalogUsecase()

	f.partRepo.On("FindByPartCode", mock.Anything, "NGK-BP6ES").Return(model.Part{}, repo.ErrNotFound)
	f.brandRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Brand{}, repo.ErrNotFound)

	_, err := uc.AdminCreatePart(ctx, 1, validCreateInput())
	assertHTTPError(t, err, 400, "marca not found")
	f.partRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_AdminCreatePart_Success(t *testing.T) {
	ctx := context.Background()
	uc, f := newCatalogUsecase()

	f.partRepo.On("FindByPartCode", mock.Anything, "NGK-BP6ES").Return(model.Part{}, repo.ErrNotFound)
	f.brandRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Brand{ID: 1}, nil)
	f.categoryRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Category{ID: 2}, nil)
	f.partRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Part) bool {
		return p.PartCode == "NGK-BP6ES" && p.BrandID == 1 && p.CategoryID == 2
	})).Return(model.Part{ID: 77, PartCode: "NGK-BP6ES"}, nil)
	f.auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.Action == model.AuditActionCreatePart && a.ResourceID == 77
	})).Return(nil)

	id, err := uc.AdminCreatePart(ctx, 1, validCreateInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(77), id)

	f.partRepo.AssertExpectations(t)
	f.auditRepo.AssertExpectations(t)
}

// =====================
// POS検索
// =====================

func TestCatalogUsecase_SearchPartsForPOS_ShortQueryReturnsEmpty(t *testing.T) {
	uc, f := newCatalogUsecase()

	for _, q := range []string{"", "b", " b "} {
		items, err := uc.SearchPartsForPOS(context.Background(), q)
		assert.NoError(t, err)
		assert.Empty(t, items)
	}
	f.partRepo.AssertNotCalled(t, "SearchForPOS", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogUsecase_SearchPartsForPOS_TrimsAndLimits(t *testing.T) {
	ctx := context.Background()
	uc, f := newCatalogUsecase()

	f.partRepo.On("SearchForPOS", mock.Anything, "bujía", 20).Return([]model.Part{{ID: 1}, {ID: 2}}, nil)

	items, err := uc.SearchPartsForPOS(ctx, "  bujía  ")
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	f.partRepo.AssertExpectations(t)
}
