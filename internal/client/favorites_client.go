package client

import (
	"context"
	"fmt"
)

// /user/user-profile/favoritos/ の呼び出し。
type FavoritesClient struct {
	c *Client
}

func NewFavoritesClient(c *Client) *FavoritesClient {
	return &FavoritesClient{c: c}
}

type FavoriteEntry struct {
	PartID int64        `json:"refaccion_id"`
	Part   *PartSummary `json:"refaccion,omitempty"`
}

func (fc *FavoritesClient) List(ctx context.Context) ([]FavoriteEntry, error) {
	var out []FavoriteEntry
	if err := fc.c.get(ctx, "/user/user-profile/favoritos/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (fc *FavoritesClient) Add(ctx context.Context, partID int64) error {
	return fc.c.post(ctx, fmt.Sprintf("/user/user-profile/favoritos/%d/", partID), nil, nil)
}

func (fc *FavoritesClient) Remove(ctx context.Context, partID int64) error {
	return fc.c.delete(ctx, fmt.Sprintf("/user/user-profile/favoritos/%d/", partID), nil)
}
