package client

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

// POSの検索欄が叩くエンドポイント。
type SearchClient struct {
	c *Client
}

func NewSearchClient(c *Client) *SearchClient {
	return &SearchClient{c: c}
}

// 検索結果の1件。precioは現在価格。
type PartHit struct {
	ID       int64           `json:"id"`
	PartCode string          `json:"codigo_parte"`
	Name     string          `json:"nombre"`
	Price    decimal.Decimal `json:"precio"`
	Stock    int64           `json:"existencias"`
}

func (sc *SearchClient) Search(ctx context.Context, q string) ([]PartHit, error) {
	var out []PartHit
	if err := sc.c.get(ctx, "/pos/search?q="+url.QueryEscape(q), &out); err != nil {
		return nil, err
	}
	return out, nil
}
