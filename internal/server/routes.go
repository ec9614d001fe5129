package server

import (
	"electromart/internal/config"
	"electromart/internal/handler"
	"electromart/internal/repository"

	"github.com/labstack/echo/v4"
)

// 各handlerが自分のルートを登録する。
type Handlers struct {
	Cfg      config.Config
	UserRepo repository.UserRepository

	Auth       *handler.AuthHandler
	Part       *handler.PartHandler
	AdminPart  *handler.AdminPartHandler
	Taxonomy   *handler.TaxonomyHandler
	Blog       *handler.BlogHandler
	Cart       *handler.CartHandler
	Favorites  *handler.FavoritesHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	AdminUser  *handler.AdminUserHandler
	AdminAudit *handler.AdminAuditHandler
	Sales      *handler.SalesHandler
}

func registerRoutes(e *echo.Echo, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Part.RegisterRoutes(e)
	h.AdminPart.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.Taxonomy.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.Blog.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.Cart.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.Favorites.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.Order.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.AdminOrder.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.AdminUser.RegisterRoutes(e)
	h.AdminAudit.RegisterRoutes(e, h.Cfg, h.UserRepo)
	h.Sales.RegisterRoutes(e, h.Cfg, h.UserRepo)
}
