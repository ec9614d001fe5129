package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"

	"github.com/shopspring/decimal"
)

// SalesUsecase はPOSの売上（venta）と返品（devolución）のロジック。
type SalesUsecase struct {
	txManager repo.TransactionManager
	saleRepo  repo.SaleRepository
	partRepo  repo.PartRepository
	auditRepo repo.AuditLogRepository
}

// DI
func NewSalesUsecase(
	txManager repo.TransactionManager,
	saleRepo repo.SaleRepository,
	partRepo repo.PartRepository,
	auditRepo repo.AuditLogRepository,
) *SalesUsecase {
	return &SalesUsecase{
		txManager: txManager,
		saleRepo:  saleRepo,
		partRepo:  partRepo,
		auditRepo: auditRepo,
	}
}

// POSチケットの1明細。precio_unitarioはカード追加時点の価格。
type SaleLineInput struct {
	PartID    int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// POST /ventas/ のレスポンス。
type CreateSalesOutput struct {
	SaleIDs []int64         `json:"ids"`
	Total   decimal.Decimal `json:"total"`
}

// チケット確定。1明細=1 ventaを同一トランザクションで作る。
// どれか1つでも在庫が足りなければ全体を失敗させる。
func (u *SalesUsecase) CreateSales(ctx context.Context, cashierUserID int64, lines []SaleLineInput) (CreateSalesOutput, error) {
	if cashierUserID <= 0 {
		return CreateSalesOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(lines) == 0 {
		return CreateSalesOutput{}, NewHTTPError(http.StatusBadRequest, "empty ticket")
	}
	for _, ln := range lines {
		if ln.PartID <= 0 {
			return CreateSalesOutput{}, NewHTTPError(http.StatusBadRequest, "invalid refaccion_id")
		}
		if ln.Quantity < 1 {
			return CreateSalesOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cantidad")
		}
		if ln.UnitPrice.IsNegative() {
			return CreateSalesOutput{}, NewHTTPError(http.StatusBadRequest, "invalid precio_unitario")
		}
	}

	ids := make([]int64, 0, len(lines))
	total := decimal.Zero

	err := u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, ln := range lines {
			p, err := r.Parts().FindByID(ctx, ln.PartID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid refaccion_id")
			}
			if err != nil {
				return err
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ln.PartID, ln.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("existencias insuficientes: %s", p.Name))
			}

			lineTotal := ln.UnitPrice.Mul(decimal.NewFromInt(ln.Quantity))
			s, err := r.Sales().Create(ctx, model.Sale{
				UserID:    &cashierUserID,
				BrandID:   p.BrandID,
				PartID:    ln.PartID,
				Quantity:  ln.Quantity,
				UnitPrice: ln.UnitPrice,
				Total:     lineTotal,
				SoldAt:    time.Now(),
			})
			if err != nil {
				return err
			}

			ids = append(ids, s.ID)
			total = total.Add(lineTotal)
		}
		return nil
	})
	if err != nil {
		if he, ok := AsHTTPError(err); ok {
			return CreateSalesOutput{}, he
		}
		return CreateSalesOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 監査ログはtxの外。確定済みの売上は消さない。
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		AdminUserID:  cashierUserID,
		Action:       model.AuditActionCreateSale,
		ResourceType: model.AuditResourceSale,
		ResourceID:   ids[0],
		Detail:       fmt.Sprintf(`{"lines":%d,"total":%q}`, len(lines), total.StringFixed(2)),
		CreatedAt:    time.Now(),
	}); err != nil {
		return CreateSalesOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CreateSalesOutput{SaleIDs: ids, Total: total}, nil
}

type ListSalesInput struct {
	Page   int
	Limit  int
	PartID *int64
	From   *time.Time
	To     *time.Time
}

type SaleListOutput struct {
	Items []model.Sale `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *SalesUsecase) ListSales(ctx context.Context, in ListSalesInput) (SaleListOutput, error) {
	if in.Page < 1 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.saleRepo.List(ctx, repo.SaleListFilter{
		Page:   in.Page,
		Limit:  in.Limit,
		PartID: in.PartID,
		From:   in.From,
		To:     in.To,
	})
	if err != nil {
		return SaleListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SaleListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

type CreateReturnInput struct {
	SaleID   int64
	Quantity int64
	Reason   string
}

// 返品。元のventaに紐付けて在庫を戻す。
func (u *SalesUsecase) CreateReturn(ctx context.Context, adminUserID int64, in CreateReturnInput) (model.Return, error) {
	if adminUserID <= 0 {
		return model.Return{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.SaleID <= 0 {
		return model.Return{}, NewHTTPError(http.StatusBadRequest, "invalid venta_id")
	}
	if in.Quantity < 1 {
		return model.Return{}, NewHTTPError(http.StatusBadRequest, "invalid cantidad")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return model.Return{}, NewHTTPError(http.StatusBadRequest, "motivo required")
	}

	sale, err := u.saleRepo.FindByID(ctx, in.SaleID)
	if err == repo.ErrNotFound {
		return model.Return{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Return{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if in.Quantity > sale.Quantity {
		return model.Return{}, NewHTTPError(http.StatusBadRequest, "cantidad exceeds venta")
	}

	var ret model.Return
	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Sales().CreateReturn(ctx, model.Return{
			SaleID:    &sale.ID,
			BrandID:   sale.BrandID,
			PartID:    sale.PartID,
			Quantity:  in.Quantity,
			UnitPrice: sale.UnitPrice,
			Total:     sale.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
			Reason:    strings.TrimSpace(in.Reason),
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		ret = created

		return r.Inventory().IncreaseStock(ctx, sale.PartID, in.Quantity)
	})
	if err != nil {
		return model.Return{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		AdminUserID:  adminUserID,
		Action:       model.AuditActionCreateReturn,
		ResourceType: model.AuditResourceSale,
		ResourceID:   sale.ID,
		Detail:       fmt.Sprintf(`{"devolucion_id":%d,"cantidad":%d}`, ret.ID, in.Quantity),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Return{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ret, nil
}

func (u *SalesUsecase) ListReturns(ctx context.Context, page int, limit int) ([]model.Return, int64, error) {
	if page < 1 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.saleRepo.ListReturns(ctx, page, limit)
	if err != nil {
		return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, total, nil
}
