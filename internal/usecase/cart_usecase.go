package usecase

import (
	"context"
	"net/http"

	repo "electromart/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /user/user-profile/cart/ の業務ロジック。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	partRepo     repo.PartRepository
}

// DI
func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	partRepo repo.PartRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		partRepo:     partRepo,
	}
}

// storefrontが使うrefacciónの要約。
type CartPartView struct {
	ID     int64           `json:"id"`
	Name   string          `json:"nombre"`
	Price  decimal.Decimal `json:"precio"`
	Image  string          `json:"imagen"`
	Code   string          `json:"codigo_parte"`
	Stock  int64           `json:"existencias"`
	Active bool            `json:"-"`
}

type CartLine struct {
	Part     CartPartView `json:"refaccion"`
	Quantity int64        `json:"cantidad"`
}

// GET /user/user-profile/cart/ のレスポンス。
// totalは明細の precio×cantidad の合計。
type CartView struct {
	Cart  []CartLine      `json:"cart"`
	Total decimal.Decimal `json:"total"`
}

type AddCartInput struct {
	PartID   int64
	Quantity int64
}

// カート取得（無ければACTIVEを作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartView(ctx, cart.ID)
}

// カートに追加。同じrefacciónが既にある場合は拒否する。
// 数量変更はstorefrontが削除→再追加で行う。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.PartID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid refaccion_id")
	}
	if in.Quantity < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid cantidad")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 公開中のrefacciónのみ
	p, err := u.partRepo.FindByID(ctx, in.PartID)
	if err == repo.ErrNotFound {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for _, it := range items {
		if it.PartID == in.PartID {
			return CartView{}, NewHTTPError(http.StatusBadRequest, "ya está en tu carrito")
		}
	}

	if in.Quantity > p.Stock {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	// unit_price_snapshot は「追加時点の価格」
	if err := u.cartItemRepo.UpsertByCartAndPart(ctx, cart.ID, in.PartID, in.Quantity, p.Price); err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartView(ctx, cart.ID)
}

// refacción単位の削除。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, partID int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid refaccion_id")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartView{Cart: []CartLine{}, Total: decimal.Zero}, nil
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByPart(ctx, cart.ID, partID); err != nil {
		if err == repo.ErrNotFound {
			return CartView{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartView(ctx, cart.ID)
}

// カートを空にする。
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// cartIDの明細をまとめてCartViewを作る。
// 非公開になったrefacciónは一覧から落とす。
func (u *CartUsecase) buildCartView(ctx context.Context, cartID int64) (CartView, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]CartLine, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := u.partRepo.FindByID(ctx, it.PartID)
		if err != nil {
			continue
		}
		if !p.IsActive {
			continue
		}

		lines = append(lines, CartLine{
			Part: CartPartView{
				ID:    p.ID,
				Name:  p.Name,
				Price: p.Price,
				Image: p.Image,
				Code:  p.PartCode,
				Stock: p.Stock,
			},
			Quantity: it.Quantity,
		})

		total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return CartView{Cart: lines, Total: total}, nil
}
