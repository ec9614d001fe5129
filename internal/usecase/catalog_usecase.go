package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type CatalogUsecase struct {
	partRepo      repo.PartRepository
	inventoryRepo repo.InventoryRepository
	brandRepo     repo.BrandRepository
	categoryRepo  repo.CategoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewCatalogUsecase(
	partRepo repo.PartRepository,
	inventoryRepo repo.InventoryRepository,
	brandRepo repo.BrandRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		partRepo:      partRepo,
		inventoryRepo: inventoryRepo,
		brandRepo:     brandRepo,
		categoryRepo:  categoryRepo,
		auditRepo:     auditRepo,
	}
}

// GET /refaccionesの入力DTO
type ListPartsInput struct {
	Page       int
	Limit      int
	Q          string
	BrandID    *int64
	CategoryID *int64
	Condition  string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

type PartListOutput struct {
	Items []model.Part `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *CatalogUsecase) ListPublicParts(ctx context.Context, in ListPartsInput) (PartListOutput, error) {
	if in.Page < 1 {
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch model.PartCondition(in.Condition) {
	case "", model.PartConditionNew, model.PartConditionUsedGood, model.PartConditionReconditioned:
	default:
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid condition")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.partRepo.ListPublic(ctx, repo.PartListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          strings.TrimSpace(in.Q),
		BrandID:    in.BrandID,
		CategoryID: in.CategoryID,
		Condition:  in.Condition,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Sort:       in.Sort,
	})
	if err != nil {
		return PartListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PartListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *CatalogUsecase) GetPartDetail(ctx context.Context, partID int64) (model.Part, error) {
	if partID <= 0 {
		return model.Part{}, NewHTTPError(http.StatusBadRequest, "invalid part id")
	}

	p, err := u.partRepo.FindByID(ctx, partID)
	if err == repo.ErrNotFound {
		return model.Part{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Part{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !p.IsActive {
		return model.Part{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

// POSの検索欄。2文字未満は空で返す。
func (u *CatalogUsecase) SearchPartsForPOS(ctx context.Context, q string) ([]model.Part, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return []model.Part{}, nil
	}
	if len(q) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	items, err := u.partRepo.SearchForPOS(ctx, q, 20)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type AdminCreatePartInput struct {
	PartCode      string
	Name          string
	Description   string
	BrandID       int64
	CategoryID    int64
	Price         decimal.Decimal
	Stock         int64
	Condition     string
	Compatibility string
	Image         string
	IsActive      bool
}

func (u *CatalogUsecase) AdminCreatePart(ctx context.Context, adminUserID int64, in AdminCreatePartInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.PartCode) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "codigo_parte required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "nombre required")
	}
	if in.BrandID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid marca_id")
	}
	if in.CategoryID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid categoria_id")
	}
	if in.Price.IsNegative() {
		return 0, NewHTTPError(http.StatusBadRequest, "precio must be >= 0")
	}
	if in.Stock < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "existencias must be >= 0")
	}
	cond := model.PartCondition(in.Condition)
	switch cond {
	case model.PartConditionNew, model.PartConditionUsedGood, model.PartConditionReconditioned:
	default:
		return 0, NewHTTPError(http.StatusBadRequest, "invalid estado")
	}

	// codigo_parteは一意
	if _, err := u.partRepo.FindByPartCode(ctx, strings.TrimSpace(in.PartCode)); err == nil {
		return 0, NewHTTPError(http.StatusConflict, "codigo_parte already exists")
	} else if err != repo.ErrNotFound {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.checkTaxonomy(ctx, in.BrandID, in.CategoryID); err != nil {
		return 0, err
	}

	now := time.Now()
	p, err := u.partRepo.Create(ctx, model.Part{
		PartCode:      strings.TrimSpace(in.PartCode),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		BrandID:       in.BrandID,
		CategoryID:    in.CategoryID,
		Price:         in.Price,
		Stock:         in.Stock,
		Condition:     cond,
		Compatibility: in.Compatibility,
		Image:         in.Image,
		IsActive:      in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		AdminUserID:  adminUserID,
		Action:       model.AuditActionCreatePart,
		ResourceType: model.AuditResourcePart,
		ResourceID:   p.ID,
		Detail:       fmt.Sprintf(`{"codigo_parte":%q}`, p.PartCode),
		CreatedAt:    time.Now(),
	}); err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p.ID, nil
}

// marca/categoríaの存在チェック
func (u *CatalogUsecase) checkTaxonomy(ctx context.Context, brandID, categoryID int64) error {
	if _, err := u.brandRepo.FindByID(ctx, brandID); err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "marca not found")
	} else if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.categoryRepo.FindByID(ctx, categoryID); err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "categoria not found")
	} else if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) AdminUpdatePart(ctx context.Context, adminUserID int64, partID int64, in AdminCreatePartInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid part id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "nombre required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "precio must be >= 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "existencias must be >= 0")
	}
	cond := model.PartCondition(in.Condition)
	switch cond {
	case model.PartConditionNew, model.PartConditionUsedGood, model.PartConditionReconditioned:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid estado")
	}

	if err := u.checkTaxonomy(ctx, in.BrandID, in.CategoryID); err != nil {
		return err
	}

	err := u.partRepo.Update(ctx, model.Part{
		ID:            partID,
		PartCode:      strings.TrimSpace(in.PartCode),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		BrandID:       in.BrandID,
		CategoryID:    in.CategoryID,
		Price:         in.Price,
		Stock:         in.Stock,
		Condition:     cond,
		Compatibility: in.Compatibility,
		Image:         in.Image,
		IsActive:      in.IsActive,
		UpdatedAt:     time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		AdminUserID:  adminUserID,
		Action:       model.AuditActionUpdatePart,
		ResourceType: model.AuditResourcePart,
		ResourceID:   partID,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) AdminDeletePart(ctx context.Context, adminUserID int64, partID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid part id")
	}

	err := u.partRepo.SoftDelete(ctx, partID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		AdminUserID:  adminUserID,
		Action:       model.AuditActionDeletePart,
		ResourceType: model.AuditResourcePart,
		ResourceID:   partID,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) AdminUpdateInventory(ctx context.Context, adminUserID int64, partID int64, newStock int64, reason string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid part id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "existencias must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	//変更前の在庫（before）
	p, err := u.partRepo.FindByID(ctx, partID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//在庫の現在値を更新
	if err := u.inventoryRepo.SetStock(ctx, partID, newStock); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//履歴を作成（差分）
	adj := model.InventoryAdjustment{
		PartID:      partID,
		AdminUserID: adminUserID,
		Delta:       newStock - p.Stock,
		Reason:      strings.TrimSpace(reason),
		CreatedAt:   time.Now(),
	}
	if err := u.inventoryRepo.CreateAdjustment(ctx, adj); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログを作成（在庫更新）
	//「誰が」「何を」「どの対象に」「どう変えたか」を残す
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		AdminUserID:  adminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourcePart,
		ResourceID:   partID,
		Detail:       fmt.Sprintf(`{"before":%d,"after":%d}`, p.Stock, newStock),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
