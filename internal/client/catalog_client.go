package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// 公開カタログ（GET /refacciones）の呼び出し。認証不要。
type CatalogClient struct {
	c *Client
}

func NewCatalogClient(c *Client) *CatalogClient {
	return &CatalogClient{c: c}
}

type PartDetail struct {
	ID       int64           `json:"id"`
	PartCode string          `json:"codigo_parte"`
	Name     string          `json:"nombre"`
	Price    decimal.Decimal `json:"precio"`
	Image    string          `json:"imagen"`
	Stock    int64           `json:"existencias"`
}

type PartListing struct {
	Items []PartDetail `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (cc *CatalogClient) List(ctx context.Context, q string, page int, limit int) (PartListing, error) {
	path := fmt.Sprintf("/refacciones?page=%d&limit=%d", page, limit)
	if q != "" {
		path += "&q=" + url.QueryEscape(q)
	}

	var out PartListing
	if err := cc.c.get(ctx, path, &out); err != nil {
		return PartListing{}, err
	}
	return out, nil
}

func (d PartDetail) Summary() PartSummary {
	return PartSummary{ID: d.ID, Name: d.Name, Price: d.Price, Image: d.Image}
}
