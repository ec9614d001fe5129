package repository

import (
	"context"

	repo "electromart/internal/repository"

	"gorm.io/gorm"
)

type GormTransactionManager struct {
	db *gorm.DB
}

// DI
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// fnに渡すrepo群は全て同じtxを共有する。
func (m *GormTransactionManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepos{tx: tx})
	})
}

type gormTxRepos struct {
	tx *gorm.DB
}

func (r *gormTxRepos) Orders() repo.OrderRepository         { return NewOrderGormRepository(r.tx) }
func (r *gormTxRepos) OrderItems() repo.OrderItemRepository { return NewOrderItemGormRepository(r.tx) }
func (r *gormTxRepos) Carts() repo.CartRepository           { return NewCartGormRepository(r.tx) }
func (r *gormTxRepos) CartItems() repo.CartItemRepository   { return NewCartGormRepository(r.tx) }
func (r *gormTxRepos) Inventory() repo.InventoryRepository  { return NewInventoryGormRepository(r.tx) }
func (r *gormTxRepos) Parts() repo.PartRepository           { return NewPartGormRepository(r.tx) }
func (r *gormTxRepos) Sales() repo.SaleRepository           { return NewSaleGormRepository(r.tx) }
func (r *gormTxRepos) Payments() repo.PaymentRepository     { return NewPaymentGormRepository(r.tx) }
