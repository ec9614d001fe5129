package usecase

import (
	"context"
	"net/http"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"
)

// FavoritesUsecase は /user/user-profile/favoritos/ の業務ロジック。
// 追加・削除とも冪等。queueのflush再送で二重に届いても壊れない。
type FavoritesUsecase struct {
	favRepo  repo.FavoriteRepository
	partRepo repo.PartRepository
}

// DI
func NewFavoritesUsecase(favRepo repo.FavoriteRepository, partRepo repo.PartRepository) *FavoritesUsecase {
	return &FavoritesUsecase{favRepo: favRepo, partRepo: partRepo}
}

type FavoriteView struct {
	PartID int64       `json:"refaccion_id"`
	Part   *model.Part `json:"refaccion,omitempty"`
}

func (u *FavoritesUsecase) ListFavorites(ctx context.Context, userID int64) ([]FavoriteView, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	favs, err := u.favRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]FavoriteView, 0, len(favs))
	for _, f := range favs {
		v := FavoriteView{PartID: f.PartID}
		p, err := u.partRepo.FindByID(ctx, f.PartID)
		if err == nil && p.IsActive {
			v.Part = &p
		}
		views = append(views, v)
	}
	return views, nil
}

func (u *FavoritesUsecase) AddFavorite(ctx context.Context, userID int64, partID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid refaccion_id")
	}

	p, err := u.partRepo.FindByID(ctx, partID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.favRepo.Add(ctx, userID, partID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *FavoritesUsecase) RemoveFavorite(ctx context.Context, userID int64, partID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid refaccion_id")
	}

	if err := u.favRepo.Remove(ctx, userID, partID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
