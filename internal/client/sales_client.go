package client

import (
	"context"

	"github.com/shopspring/decimal"
)

// POSがチケット確定に使う呼び出し。
type SalesClient struct {
	c *Client
}

func NewSalesClient(c *Client) *SalesClient {
	return &SalesClient{c: c}
}

type SaleLine struct {
	PartID    int64           `json:"refaccion_id"`
	Quantity  int64           `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

type CreateSalesResult struct {
	SaleIDs []int64         `json:"ids"`
	Total   decimal.Decimal `json:"total"`
}

func (sc *SalesClient) CreateSales(ctx context.Context, lines []SaleLine) (CreateSalesResult, error) {
	body := map[string]interface{}{"items": lines}

	var out CreateSalesResult
	if err := sc.c.post(ctx, "/ventas/", body, &out); err != nil {
		return CreateSalesResult{}, err
	}
	return out, nil
}
