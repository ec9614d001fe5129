package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"
	"electromart/internal/usecase"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// SalesTxManagerMock は WithinTx に固定のreposを渡してunitテストを回す
type SalesTxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *SalesTxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type SalesTxReposMock struct {
	parts     repo.PartRepository
	inventory repo.InventoryRepository
	sales     repo.SaleRepository
}

func (r *SalesTxReposMock) Orders() repo.OrderRepository         { panic("not used") }
func (r *SalesTxReposMock) OrderItems() repo.OrderItemRepository { panic("not used") }
func (r *SalesTxReposMock) Carts() repo.CartRepository           { panic("not used") }
func (r *SalesTxReposMock) CartItems() repo.CartItemRepository   { panic("not used") }
func (r *SalesTxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *SalesTxReposMock) Parts() repo.PartRepository           { return r.parts }
func (r *SalesTxReposMock) Sales() repo.SaleRepository           { return r.sales }
func (r *SalesTxReposMock) Payments() repo.PaymentRepository     { panic("not used") }

// =====================
// Repository mocks
// =====================

type SalesSaleRepoMock struct{ mock.Mock }

func (m *SalesSaleRepoMock) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Sale)
	return created, args.Error(1)
}

func (m *SalesSaleRepoMock) FindByID(ctx context.Context, id int64) (model.Sale, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Sale)
	return s, args.Error(1)
}

func (m *SalesSaleRepoMock) List(ctx context.Context, f repo.SaleListFilter) ([]model.Sale, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Sale)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *SalesSaleRepoMock) CreateReturn(ctx context.Context, r model.Return) (model.Return, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Return)
	return created, args.Error(1)
}

func (m *SalesSaleRepoMock) ListReturns(ctx context.Context, page int, limit int) ([]model.Return, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Return)
	return items, args.Get(1).(int64), args.Error(2)
}

type SalesInventoryRepoMock struct{ mock.Mock }

func (m *SalesInventoryRepoMock) SetStock(ctx context.Context, partID int64, newStock int64) error {
	panic("not used in SalesUsecase tests")
}

func (m *SalesInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, partID int64, qty int64) (bool, error) {
	args := m.Called(ctx, partID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *SalesInventoryRepoMock) IncreaseStock(ctx context.Context, partID int64, qty int64) error {
	args := m.Called(ctx, partID, qty)
	return args.Error(0)
}

func (m *SalesInventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	panic("not used in SalesUsecase tests")
}

type SalesAuditRepoMock struct{ mock.Mock }

func (m *SalesAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *SalesAuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in SalesUsecase tests")
}

type salesFixture struct {
	uc        *usecase.SalesUsecase
	tx        *SalesTxManagerMock
	saleRepo  *SalesSaleRepoMock
	partRepo  *CartPartRepoMock
	inventory *SalesInventoryRepoMock
	audit     *SalesAuditRepoMock
}

func newSalesFixture() salesFixture {
	saleRepo := new(SalesSaleRepoMock)
	partRepo := new(CartPartRepoMock)
	inventory := new(SalesInventoryRepoMock)
	audit := new(SalesAuditRepoMock)

	tx := &SalesTxManagerMock{Repos: &SalesTxReposMock{
		parts:     partRepo,
		inventory: inventory,
		sales:     saleRepo,
	}}

	return salesFixture{
		uc:        usecase.NewSalesUsecase(tx, saleRepo, partRepo, audit),
		tx:        tx,
		saleRepo:  saleRepo,
		partRepo:  partRepo,
		inventory: inventory,
		audit:     audit,
	}
}

// =====================
// CreateSales
// =====================

func TestSalesUsecase_CreateSales_OneSalePerLine(t *testing.T) {
	ctx := context.Background()
	f := newSalesFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)

	f.partRepo.On("FindByID", mock.Anything, int64(10)).Return(activePart(10, "100.00", 5), nil)
	f.partRepo.On("FindByID", mock.Anything, int64(11)).Return(activePart(11, "50.00", 5), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(10), int64(2)).Return(true, nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(11), int64(1)).Return(true, nil)
	f.saleRepo.On("Create", mock.Anything, mock.MatchedBy(func(s model.Sale) bool { return s.PartID == 10 })).
		Return(model.Sale{ID: 100, PartID: 10}, nil)
	f.saleRepo.On("Create", mock.Anything, mock.MatchedBy(func(s model.Sale) bool { return s.PartID == 11 })).
		Return(model.Sale{ID: 101, PartID: 11}, nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.CreateSales(ctx, 1, []usecase.SaleLineInput{
		{PartID: 10, Quantity: 2, UnitPrice: decimal.RequireFromString("100.00")},
		{PartID: 11, Quantity: 1, UnitPrice: decimal.RequireFromString("50.00")},
	})
	assert.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, out.SaleIDs)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("250.00")))

	f.saleRepo.AssertNumberOfCalls(t, "Create", 2)
	f.audit.AssertExpectations(t)
}

func TestSalesUsecase_CreateSales_InsufficientStockNamesPart(t *testing.T) {
	ctx := context.Background()
	f := newSalesFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.partRepo.On("FindByID", mock.Anything, int64(10)).Return(activePart(10, "100.00", 1), nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(10), int64(3)).Return(false, nil)

	_, err := f.uc.CreateSales(ctx, 1, []usecase.SaleLineInput{
		{PartID: 10, Quantity: 3, UnitPrice: decimal.RequireFromString("100.00")},
	})
	assertHTTPError(t, err, 400, "existencias insuficientes: Bujía NGK")

	f.saleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSalesUsecase_CreateSales_EmptyTicket(t *testing.T) {
	f := newSalesFixture()

	_, err := f.uc.CreateSales(context.Background(), 1, nil)
	assertHTTPError(t, err, 400, "empty ticket")
}

func TestSalesUsecase_CreateSales_ValidatesAllLinesBeforeTx(t *testing.T) {
	f := newSalesFixture()

	_, err := f.uc.CreateSales(context.Background(), 1, []usecase.SaleLineInput{
		{PartID: 10, Quantity: 1, UnitPrice: decimal.RequireFromString("100.00")},
		{PartID: 11, Quantity: 0, UnitPrice: decimal.RequireFromString("50.00")},
	})
	assertHTTPError(t, err, 400, "invalid cantidad")

	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

// =====================
// CreateReturn
// =====================

func TestSalesUsecase_CreateReturn_RestocksPart(t *testing.T) {
	ctx := context.Background()
	f := newSalesFixture()

	sale := model.Sale{
		ID:        100,
		BrandID:   4,
		PartID:    10,
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("100.00"),
	}
	f.saleRepo.On("FindByID", mock.Anything, int64(100)).Return(sale, nil)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.saleRepo.On("CreateReturn", mock.Anything, mock.MatchedBy(func(r model.Return) bool {
		return r.PartID == 10 && r.Quantity == 2 && r.Total.Equal(decimal.RequireFromString("200.00"))
	})).Return(model.Return{ID: 55, PartID: 10, Quantity: 2}, nil)
	f.inventory.On("IncreaseStock", mock.Anything, int64(10), int64(2)).Return(nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	ret, err := f.uc.CreateReturn(ctx, 1, usecase.CreateReturnInput{SaleID: 100, Quantity: 2, Reason: "pieza dañada"})
	assert.NoError(t, err)
	assert.Equal(t, int64(55), ret.ID)

	f.inventory.AssertExpectations(t)
}

func TestSalesUsecase_CreateReturn_QuantityExceedsSale(t *testing.T) {
	f := newSalesFixture()

	f.saleRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Sale{ID: 100, Quantity: 1}, nil)

	_, err := f.uc.CreateReturn(context.Background(), 1, usecase.CreateReturnInput{SaleID: 100, Quantity: 2, Reason: "x"})
	assertHTTPError(t, err, 400, "cantidad exceeds venta")

	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

// =====================
// ListSales
// =====================

func TestSalesUsecase_ListSales_PassesFilter(t *testing.T) {
	ctx := context.Background()
	f := newSalesFixture()

	partID := int64(10)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := repo.SaleListFilter{Page: 1, Limit: 20, PartID: &partID, From: &from}

	f.saleRepo.On("List", mock.Anything, filter).Return([]model.Sale{{ID: 1}}, int64(1), nil)

	out, err := f.uc.ListSales(ctx, usecase.ListSalesInput{Page: 1, Limit: 20, PartID: &partID, From: &from})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

func TestSalesUsecase_ListSales_InvalidLimit(t *testing.T) {
	f := newSalesFixture()

	_, err := f.uc.ListSales(context.Background(), usecase.ListSalesInput{Page: 1, Limit: 0})
	assertHTTPError(t, err, 400, "invalid limit")
}
