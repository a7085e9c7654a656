package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockyard/backend/internal/application/catalog"
	identityapp "github.com/stockyard/backend/internal/application/identity"
	partnerapp "github.com/stockyard/backend/internal/application/partner"
	productionapp "github.com/stockyard/backend/internal/application/production"
	tradeapp "github.com/stockyard/backend/internal/application/trade"
	"github.com/stockyard/backend/internal/infrastructure/auth"
	"github.com/stockyard/backend/internal/infrastructure/config"
	"github.com/stockyard/backend/internal/infrastructure/logger"
	"github.com/stockyard/backend/internal/infrastructure/persistence"
	"github.com/stockyard/backend/internal/interfaces/http/handler"
	"github.com/stockyard/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	jwtService := auth.NewJWTService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis connected")
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	orderRepo := persistence.NewGormProductionOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	authService := identityapp.NewAuthService(userRepo, orgRepo, jwtService, blacklist, log)
	orgService := identityapp.NewOrganizationService(orgRepo, userRepo, log)
	userService := identityapp.NewUserService(userRepo, log)
	unitService := catalogapp.NewUnitService(unitRepo)
	productService := catalogapp.NewProductService(productRepo, unitRepo)
	vendorService := partnerapp.NewVendorService(vendorRepo)
	clientService := partnerapp.NewClientService(clientRepo)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, txScope)
	saleService := tradeapp.NewSaleService(saleRepo, txScope)
	orderService := productionapp.NewOrderService(orderRepo, txScope)

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			Health:          handler.NewHealthHandler(db, version),
			Auth:            handler.NewAuthHandler(authService),
			Organization:    handler.NewOrganizationHandler(orgService),
			User:            handler.NewUserHandler(userService),
			Unit:            handler.NewUnitHandler(unitService),
			Product:         handler.NewProductHandler(productService),
			Vendor:          handler.NewVendorHandler(vendorService),
			Client:          handler.NewClientHandler(clientService),
			Purchase:        handler.NewPurchaseHandler(purchaseService),
			Sale:            handler.NewSaleHandler(saleService),
			ProductionOrder: handler.NewProductionOrderHandler(orderService),
		},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		HTTP:           cfg.HTTP,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
