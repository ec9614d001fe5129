package handler

import (
	"net/http"
	"time"

	"electromart/internal/config"
	"electromart/internal/middleware"
	"electromart/internal/repository"
	"electromart/internal/usecase"
	"electromart/internal/validator"

	"github.com/labstack/echo/v4"
)

// /auth のHTTP。refresh/csrfはCookieで受け渡す。
type AuthHandler struct {
	cfg      config.Config
	userRepo repository.UserRepository
	uc       *usecase.AuthUsecase
}

// DI
func NewAuthHandler(cfg config.Config, userRepo repository.UserRepository, uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{cfg: cfg, userRepo: userRepo, uc: uc}
}

// refresh cookieの有効期限（usecaseのrefreshTokenTTLと揃える）
const refreshCookieTTL = 30 * 24 * time.Hour

func errorJSON(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)
	e.POST("/auth/logout", h.Logout)

	me := e.Group("/auth")
	me.Use(middleware.AuthJWT(h.cfg))
	me.Use(middleware.TokenVersionGuard(h.userRepo))
	me.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	userAgent := c.Request().Header.Get("User-Agent")
	ip := c.RealIP()

	res, err := h.uc.Login(c.Request().Context(), req, userAgent, ip)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, res.RefreshTokenPlain)
	h.setCsrfCookie(c, res.CsrfTokenPlain)

	return c.JSON(http.StatusOK, res.Body)
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	//refreshはCookieから。CSRFはヘッダとCookieの二重提出で確認。
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	csrfCookie, err := c.Cookie("csrf_token")
	if err != nil || csrfCookie.Value == "" {
		return c.JSON(http.StatusForbidden, errorJSON("csrf"))
	}
	csrfHeader := c.Request().Header.Get("X-CSRF-Token")
	if csrfHeader == "" || csrfHeader != csrfCookie.Value {
		return c.JSON(http.StatusForbidden, errorJSON("csrf"))
	}

	userAgent := c.Request().Header.Get("User-Agent")
	ip := c.RealIP()

	res, err := h.uc.Refresh(c.Request().Context(), cookie.Value, userAgent, ip)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, res.RefreshTokenPlain)
	h.setCsrfCookie(c, res.CsrfTokenPlain)

	return c.JSON(http.StatusOK, res.Body)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	out, err := h.uc.Logout(c.Request().Context(), cookie.Value)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.clearAuthCookies(c)
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, plain string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plain,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.GoEnv != "dev",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(refreshCookieTTL),
	})
}

// csrfはJSから読める（HttpOnlyなし）
func (h *AuthHandler) setCsrfCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "csrf_token",
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.cfg.GoEnv != "dev",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(refreshCookieTTL),
	})
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	c.SetCookie(&http.Cookie{Name: "refresh", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	c.SetCookie(&http.Cookie{Name: "csrf_token", Value: "", Path: "/", MaxAge: -1})
}

// usecaseのauthエラーをHTTPに写す。
func writeAuthError(c echo.Context, err error) error {
	switch err {
	case usecase.ErrValidation, validator.ErrInvalidInput, validator.ErrInvalidRefresh:
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	case validator.ErrEmailAlreadyUsed, usecase.ErrConflict:
		return c.JSON(http.StatusConflict, errorJSON("conflict"))
	case usecase.ErrUnauthorized, usecase.ErrSecurityIncident:
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	case usecase.ErrForbidden:
		return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
	default:
		return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
	}
}
