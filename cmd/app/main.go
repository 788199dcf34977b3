package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/config"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/application/usecase"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/infrastructure/cache"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/infrastructure/repository"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/infrastructure/security"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/logging"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/middleware"
	grpc_server "github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/transport/grpc"
	handlers "github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logging.Base().Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logging.Init("byway-api", cfg.LogFile)

	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil || taxRate.IsNegative() {
		log.Error("invalid TAX_RATE", "value", cfg.TaxRate)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		log.Error("failed to migrate DB", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	courseRepo := repository.NewCourseRepository(db)
	cartRepo := repository.NewCartRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	courseCache := cache.NewCourseCache(rdb, cfg.CacheTTL)
	pricer := domain.NewPricer(taxRate)

	purchaseUseCase := usecase.NewPurchaseUseCase(repository.NewTxManager(db), purchaseRepo, pricer)
	cartUseCase := usecase.NewCartUseCase(cartRepo, courseRepo, purchaseRepo, pricer)
	catalogUseCase := usecase.NewCatalogUseCase(courseRepo, categoryRepo, courseCache)
	adminUseCase := usecase.NewAdminUseCase(courseRepo, categoryRepo, instructorRepo, purchaseRepo, courseCache)

	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.RouterDeps{
		Catalog:        handlers.NewCatalogHandler(catalogUseCase),
		Cart:           handlers.NewCartHandler(cartUseCase),
		Purchase:       handlers.NewPurchaseHandler(purchaseUseCase),
		Admin:          handlers.NewAdminHandler(adminUseCase),
		Tokens:         security.NewTokenManager(cfg.AccessSecret),
		Limiter:        middleware.NewRateLimiter(rdb),
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		Health:         sqlDB.Ping,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	health := grpc_server.NewHealthServer(sqlDB.PingContext, 10*time.Second, log)
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Error("failed to listen", "addr", cfg.GRPCPort, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go health.Watch(ctx)
	go func() {
		log.Info("gRPC health server is running", "addr", cfg.GRPCPort)
		if err := health.Server().Serve(lis); err != nil {
			log.Error("gRPC server stopped", "error", err)
		}
	}()
	go func() {
		log.Info("HTTP server is running", "addr", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down servers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown", "error", err)
	}
	health.Stop()
	_ = rdb.Close()
	_ = sqlDB.Close()
}
