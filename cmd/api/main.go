package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"electromart/internal/config"
	"electromart/internal/domain/model"
	"electromart/internal/handler"
	"electromart/internal/infra/db"
	infraRepo "electromart/internal/infra/repository"
	"electromart/internal/server"
	"electromart/internal/usecase"
	"electromart/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Brand{},
		&model.Category{},
		&model.Supplier{},
		&model.Part{},
		&model.BlogPost{},
		&model.Cart{},
		&model.CartItem{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Sale{},
		&model.Return{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	partRepo := infraRepo.NewPartGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	supplierRepo := infraRepo.NewSupplierGormRepository(gormDB)
	blogRepo := infraRepo.NewBlogGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	favRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewGormTransactionManager(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, authValidator)
	catalogUC := usecase.NewCatalogUsecase(partRepo, inventoryRepo, brandRepo, categoryRepo, auditRepo)
	taxonomyUC := usecase.NewTaxonomyUsecase(brandRepo, categoryRepo, supplierRepo)
	blogUC := usecase.NewBlogUsecase(blogRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, partRepo)
	favoritesUC := usecase.NewFavoritesUsecase(favRepo, partRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	salesUC := usecase.NewSalesUsecase(txManager, saleRepo, partRepo, auditRepo)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	h := server.Handlers{
		Cfg:      cfg,
		UserRepo: userRepo,

		Auth:       handler.NewAuthHandler(cfg, userRepo, authUC),
		Part:       handler.NewPartHandler(catalogUC),
		AdminPart:  handler.NewAdminPartHandler(catalogUC),
		Taxonomy:   handler.NewTaxonomyHandler(taxonomyUC),
		Blog:       handler.NewBlogHandler(blogUC),
		Cart:       handler.NewCartHandler(cartUC),
		Favorites:  handler.NewFavoritesHandler(favoritesUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:  handler.NewAdminUserHandler(cfg, userRepo, authUC),
		AdminAudit: handler.NewAdminAuditHandler(auditUC),
		Sales:      handler.NewSalesHandler(salesUC, catalogUC),
	}

	srv := server.New(cfg, logger, h)

	//Server起動
	go func() {
		if err := srv.Start(); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	//SIGINT/SIGTERMで停止
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.GoEnv == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
