package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shopadmin/internal/config"
	"shopadmin/internal/domain/identifier"
	"shopadmin/internal/handler"
	"shopadmin/internal/infra/auth"
	"shopadmin/internal/infra/db"
	"shopadmin/internal/infra/logger"
	infraRepo "shopadmin/internal/infra/repository"
	"shopadmin/internal/server"
	"shopadmin/internal/usecase"
	authUC "shopadmin/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	appName    = "Shop Admin API"
	appVersion = "1.0.0"
)

func main() {
	//.envがあれば読む（無くてもよい）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zl := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = zl.Sync() }()

	//DB接続
	gormDB, err := db.Connect(cfg, zl)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	clock := usecase.SystemClock()

	//Usecase生成
	productUC := usecase.NewProductUsecase(txm, productRepo, categoryRepo, clock)
	categoryUC := usecase.NewCategoryUsecase(txm, categoryRepo, clock)
	customerUC := usecase.NewCustomerUsecase(txm, customerRepo, clock)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, identifier.NewRandomOrderNumberGenerator(), clock)
	analyticsUC := usecase.NewAnalyticsUsecase(txm)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	loginUC := authUC.NewLoginUsecase(userRepo, authUC.NewBcryptPasswordVerifier(), issuer, clock)
	meUC := authUC.NewMeUsecase(userRepo)

	//Handler生成 + ルート登録
	e := server.New(cfg, zl)
	server.RegisterRoutes(e, cfg.JWTSecret, userRepo, server.Handlers{
		Health:     handler.NewHealthHandler(appName, appVersion),
		Auth:       handler.NewAuthHandler(loginUC, meUC),
		Products:   handler.NewProductHandler(productUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		Customers:  handler.NewCustomerHandler(customerUC),
		Orders:     handler.NewOrderHandler(orderUC, analyticsUC),
		Analytics:  handler.NewAnalyticsHandler(analyticsUC),
		AuditLogs:  handler.NewAuditLogHandler(auditUC),
	})

	//Server起動（SIGINT/SIGTERMで停止）
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, e, cfg.Port, zl); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
