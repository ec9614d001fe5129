package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"
)

type BlogUsecase struct {
	blogRepo repo.BlogRepository
}

// DI
func NewBlogUsecase(blogRepo repo.BlogRepository) *BlogUsecase {
	return &BlogUsecase{blogRepo: blogRepo}
}

type BlogListOutput struct {
	Items []model.BlogPost `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *BlogUsecase) ListPosts(ctx context.Context, category string, page int, limit int) (BlogListOutput, error) {
	if page < 1 {
		return BlogListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 50 {
		return BlogListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.blogRepo.List(ctx, strings.TrimSpace(category), page, limit)
	if err != nil {
		return BlogListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return BlogListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *BlogUsecase) GetPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	if strings.TrimSpace(slug) == "" {
		return model.BlogPost{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	p, err := u.blogRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type BlogPostInput struct {
	Title       string
	Description string
	Image       string
	Category    string
}

var slugSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// タイトルからslugを作る。
func makeSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugSanitizer.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (u *BlogUsecase) AdminCreatePost(ctx context.Context, adminUserID int64, in BlogPostInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "description required")
	}

	p, err := u.blogRepo.Create(ctx, model.BlogPost{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Image:       in.Image,
		Slug:        makeSlug(in.Title),
		Category:    strings.TrimSpace(in.Category),
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p.ID, nil
}

func (u *BlogUsecase) AdminUpdatePost(ctx context.Context, adminUserID int64, postID int64, in BlogPostInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if postID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title required")
	}

	err := u.blogRepo.Update(ctx, model.BlogPost{
		ID:          postID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Image:       in.Image,
		Slug:        makeSlug(in.Title),
		Category:    strings.TrimSpace(in.Category),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *BlogUsecase) AdminDeletePost(ctx context.Context, adminUserID int64, postID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if postID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.blogRepo.Delete(ctx, postID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
