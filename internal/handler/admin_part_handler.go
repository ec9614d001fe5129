package handler

import (
	"net/http"
	"strconv"

	"electromart/internal/config"
	"electromart/internal/middleware"
	"electromart/internal/repository"
	"electromart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// SuccessResponse は { message: string } の形に寄せます。
type SuccessResponse struct {
	Message string `json:"message"`
}

type PartCreateRequest struct {
	PartCode      string          `json:"codigo_parte"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion"`
	BrandID       int64           `json:"marca_id"`
	CategoryID    int64           `json:"categoria_id"`
	Price         decimal.Decimal `json:"precio"`
	Stock         int64           `json:"existencias"`
	Condition     string          `json:"estado"`
	Compatibility string          `json:"compatibilidad"`
	Image         string          `json:"imagen"`
	IsActive      bool            `json:"is_active"`
}

// InventoryUpdateRequest は在庫更新の入力です。
type InventoryUpdateRequest struct {
	Stock  int64  `json:"existencias"`
	Reason string `json:"reason"`
}

// /admin/refacciones と /admin/inventory をまとめる
type AdminPartHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewAdminPartHandler(uc *usecase.CatalogUsecase) *AdminPartHandler {
	return &AdminPartHandler{uc: uc}
}

// adminを登録
func (h *AdminPartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/refacciones", h.createPart)
	admin.PUT("/refacciones/:id", h.updatePart)
	admin.DELETE("/refacciones/:id", h.deletePart)
	admin.PUT("/inventory/:refaccion_id", h.updateInventory)
}

func (h *AdminPartHandler) createPart(c echo.Context) error {
	var req PartCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	_, err := h.uc.AdminCreatePart(
		c.Request().Context(),
		adminID,
		usecase.AdminCreatePartInput{
			PartCode:      req.PartCode,
			Name:          req.Name,
			Description:   req.Description,
			BrandID:       req.BrandID,
			CategoryID:    req.CategoryID,
			Price:         req.Price,
			Stock:         req.Stock,
			Condition:     req.Condition,
			Compatibility: req.Compatibility,
			Image:         req.Image,
			IsActive:      req.IsActive,
		},
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "created"})
}

func (h *AdminPartHandler) updatePart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PartCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	err = h.uc.AdminUpdatePart(
		c.Request().Context(),
		adminID,
		id,
		usecase.AdminCreatePartInput{
			PartCode:      req.PartCode,
			Name:          req.Name,
			Description:   req.Description,
			BrandID:       req.BrandID,
			CategoryID:    req.CategoryID,
			Price:         req.Price,
			Stock:         req.Stock,
			Condition:     req.Condition,
			Compatibility: req.Compatibility,
			Image:         req.Image,
			IsActive:      req.IsActive,
		},
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminPartHandler) deletePart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeletePart(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminPartHandler) updateInventory(c echo.Context) error {
	partID, err := strconv.ParseInt(c.Param("refaccion_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid refaccion_id"})
	}

	var req InventoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminUpdateInventory(
		c.Request().Context(),
		adminID,
		partID,
		req.Stock,
		req.Reason,
	); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock updated"})
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}
