package handler

import (
	"net/http"
	"strconv"
	"time"

	"electromart/internal/config"
	"electromart/internal/middleware"
	"electromart/internal/repository"
	"electromart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// POSの /ventas/ と /devoluciones/ のHTTP。スタッフ専用。
type SalesHandler struct {
	salesUC   *usecase.SalesUsecase
	catalogUC *usecase.CatalogUsecase
}

// DI
func NewSalesHandler(salesUC *usecase.SalesUsecase, catalogUC *usecase.CatalogUsecase) *SalesHandler {
	return &SalesHandler{salesUC: salesUC, catalogUC: catalogUC}
}

type SaleLineRequest struct {
	PartID    int64           `json:"refaccion_id"`
	Quantity  int64           `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

type CreateSalesRequest struct {
	Items []SaleLineRequest `json:"items"`
}

type ReturnCreateRequest struct {
	SaleID   int64  `json:"venta_id"`
	Quantity int64  `json:"cantidad"`
	Reason   string `json:"motivo"`
}

func (h *SalesHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/ventas/", h.createSales)
	g.GET("/ventas/", h.listSales)
	g.POST("/devoluciones/", h.createReturn)
	g.GET("/devoluciones/", h.listReturns)
	g.GET("/pos/search", h.search)
}

// POSチケット確定。全明細が通るか、全体が失敗するかのどちらか。
func (h *SalesHandler) createSales(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateSalesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.SaleLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.SaleLineInput{
			PartID:    it.PartID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	out, err := h.salesUC.CreateSales(c.Request().Context(), userID, lines)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SalesHandler) listSales(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var partID *int64
	if v := c.QueryParam("refaccion_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid refaccion_id"})
		}
		partID = &id
	}

	var fromPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		fromPtr = &tm
	}

	var toPtr *time.Time
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		toPtr = &tm
	}

	out, err := h.salesUC.ListSales(c.Request().Context(), usecase.ListSalesInput{
		Page:   page,
		Limit:  limit,
		PartID: partID,
		From:   fromPtr,
		To:     toPtr,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SalesHandler) createReturn(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ReturnCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.salesUC.CreateReturn(c.Request().Context(), userID, usecase.CreateReturnInput{
		SaleID:   req.SaleID,
		Quantity: req.Quantity,
		Reason:   req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SalesHandler) listReturns(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	items, total, err := h.salesUC.ListReturns(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// POSの検索欄。nombreまたはcodigo_parteの部分一致。
func (h *SalesHandler) search(c echo.Context) error {
	items, err := h.catalogUC.SearchPartsForPOS(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}
