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

type CartCartRepoMock struct{ mock.Mock }

func (m *CartCartRepoMock) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartCartRepoMock) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartCartRepoMock) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	panic("not used in CartUsecase tests")
}

func (m *CartCartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndPart(ctx context.Context, cartID int64, partID int64, addQty int64, unitPriceSnapshot decimal.Decimal) error {
	args := m.Called(ctx, cartID, partID, addQty, unitPriceSnapshot)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByPart(ctx context.Context, cartID int64, partID int64) error {
	args := m.Called(ctx, cartID, partID)
	return args.Error(0)
}

type CartPartRepoMock struct{ mock.Mock }

func (m *CartPartRepoMock) ListPublic(ctx context.Context, q repo.PartListQuery) ([]model.Part, int64, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartPartRepoMock) FindByID(ctx context.Context, id int64) (model.Part, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Part)
	return p, args.Error(1)
}

func (m *CartPartRepoMock) FindByPartCode(ctx context.Context, code string) (model.Part, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartPartRepoMock) SearchForPOS(ctx context.Context, q string, limit int) ([]model.Part, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartPartRepoMock) Create(ctx context.Context, p model.Part) (model.Part, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartPartRepoMock) Update(ctx context.Context, p model.Part) error {
	panic("not used in CartUsecase tests")
}

func (m *CartPartRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

func assertHTTPError(t *testing.T, err error, status int, contains string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Contains(t, he.Message, contains)
	}
}

func newCartUsecase() (*usecase.CartUsecase, *CartCartRepoMock, *CartItemRepoMock, *CartPartRepoMock) {
	cartRepo := new(CartCartRepoMock)
	itemRepo := new(CartItemRepoMock)
	partRepo := new(CartPartRepoMock)
	return usecase.NewCartUsecase(cartRepo, itemRepo, partRepo), cartRepo, itemRepo, partRepo
}

func activePart(id int64, price string, stock int64) model.Part {
	return model.Part{
		ID:       id,
		Name:     "Bujía NGK",
		PartCode: "NGK-001",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
}

// =====================
// GetCart
// =====================

func TestCartUsecase_GetCart_CreatesActiveCartWhenMissing(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 3, UserID: 7, Status: model.CartStatusActive}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{}, nil)

	view, err := uc.GetCart(ctx, 7)
	assert.NoError(t, err)
	assert.Empty(t, view.Cart)
	assert.True(t, view.Total.IsZero())

	cartRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_GetCart_Unauthorized(t *testing.T) {
	uc, _, _, _ := newCartUsecase()

	_, err := uc.GetCart(context.Background(), 0)
	assertHTTPError(t, err, 401, "unauthorized")
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, partRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 3}, nil)
	partRepo.On("FindByID", mock.Anything, int64(10)).Return(activePart(10, "150.00", 5), nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{CartID: 3, PartID: 10, Quantity: 1},
	}, nil)

	_, err := uc.AddToCart(ctx, 7, usecase.AddCartInput{PartID: 10, Quantity: 1})
	assertHTTPError(t, err, 400, "ya está en tu carrito")

	itemRepo.AssertNotCalled(t, "UpsertByCartAndPart", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_SnapshotsPriceAtAdd(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, partRepo := newCartUsecase()

	price := decimal.RequireFromString("150.00")
	part := activePart(10, "150.00", 5)

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 3}, nil)
	partRepo.On("FindByID", mock.Anything, int64(10)).Return(part, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{}, nil).Once()
	itemRepo.On("UpsertByCartAndPart", mock.Anything, int64(3), int64(10), int64(2), price).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{CartID: 3, PartID: 10, Quantity: 2, UnitPriceSnapshot: price},
	}, nil)

	view, err := uc.AddToCart(ctx, 7, usecase.AddCartInput{PartID: 10, Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, view.Cart, 1)
	assert.Equal(t, int64(2), view.Cart[0].Quantity)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("300.00")))

	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_StockExceeded(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, partRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 3}, nil)
	partRepo.On("FindByID", mock.Anything, int64(10)).Return(activePart(10, "150.00", 1), nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{}, nil)

	_, err := uc.AddToCart(ctx, 7, usecase.AddCartInput{PartID: 10, Quantity: 2})
	assertHTTPError(t, err, 400, "stock exceeded")
}

func TestCartUsecase_AddToCart_InactivePartRejected(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, partRepo := newCartUsecase()

	inactive := activePart(10, "150.00", 5)
	inactive.IsActive = false

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 3}, nil)
	partRepo.On("FindByID", mock.Anything, int64(10)).Return(inactive, nil)

	_, err := uc.AddToCart(ctx, 7, usecase.AddCartInput{PartID: 10, Quantity: 1})
	assertHTTPError(t, err, 400, "invalid")
}

// =====================
// RemoveFromCart / ClearCart
// =====================

func TestCartUsecase_RemoveFromCart_NoActiveCartReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, _ := newCartUsecase()

	cartRepo.On("FindActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{}, repo.ErrNotFound)

	view, err := uc.RemoveFromCart(ctx, 7, 10)
	assert.NoError(t, err)
	assert.Empty(t, view.Cart)
	assert.True(t, view.Total.IsZero())
}

func TestCartUsecase_ClearCart_NoActiveCartIsNoop(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, _ := newCartUsecase()

	cartRepo.On("FindActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{}, repo.ErrNotFound)

	assert.NoError(t, uc.ClearCart(ctx, 7))
	cartRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

// =====================
// buildCartView
// =====================

func TestCartUsecase_GetCart_DropsInactiveParts(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, partRepo := newCartUsecase()

	gone := activePart(11, "99.00", 2)
	gone.IsActive = false

	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 3}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{CartID: 3, PartID: 10, Quantity: 1},
		{CartID: 3, PartID: 11, Quantity: 1},
	}, nil)
	partRepo.On("FindByID", mock.Anything, int64(10)).Return(activePart(10, "150.00", 5), nil)
	partRepo.On("FindByID", mock.Anything, int64(11)).Return(gone, nil)

	view, err := uc.GetCart(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, view.Cart, 1)
	assert.Equal(t, int64(10), view.Cart[0].Part.ID)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("150.00")))
}
