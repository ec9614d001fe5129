package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// サーバーが返すrefacciónの要約。
type PartSummary struct {
	ID    int64           `json:"id"`
	Name  string          `json:"nombre"`
	Price decimal.Decimal `json:"precio"`
	Image string          `json:"imagen"`
}

type CartLine struct {
	Part     PartSummary `json:"refaccion"`
	Quantity int64       `json:"cantidad"`
}

// GET /user/user-profile/cart/ のレスポンス。
type CartPayload struct {
	Cart  []CartLine      `json:"cart"`
	Total decimal.Decimal `json:"total"`
}

// remote cartの呼び出し。
type CartClient struct {
	c *Client
}

func NewCartClient(c *Client) *CartClient {
	return &CartClient{c: c}
}

func (cc *CartClient) Get(ctx context.Context) (CartPayload, error) {
	var out CartPayload
	if err := cc.c.get(ctx, "/user/user-profile/cart/", &out); err != nil {
		return CartPayload{}, err
	}
	return out, nil
}

func (cc *CartClient) Add(ctx context.Context, partID int64, quantity int64) error {
	body := map[string]int64{
		"refaccion_id": partID,
		"cantidad":     quantity,
	}
	return cc.c.post(ctx, "/user/user-profile/cart/", body, nil)
}

func (cc *CartClient) Remove(ctx context.Context, partID int64) error {
	return cc.c.delete(ctx, fmt.Sprintf("/user/user-profile/cart/%d/", partID), nil)
}

func (cc *CartClient) Clear(ctx context.Context) error {
	return cc.c.delete(ctx, "/user/user-profile/cart/", nil)
}
