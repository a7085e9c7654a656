package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockyard/backend/internal/infrastructure/auth"
	"github.com/stockyard/backend/internal/infrastructure/config"
	"github.com/stockyard/backend/internal/infrastructure/logger"
	"github.com/stockyard/backend/internal/interfaces/http/handler"
	"github.com/stockyard/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler registered by the router
type Handlers struct {
	Health          *handler.HealthHandler
	Auth            *handler.AuthHandler
	Organization    *handler.OrganizationHandler
	User            *handler.UserHandler
	Unit            *handler.UnitHandler
	Product         *handler.ProductHandler
	Vendor          *handler.VendorHandler
	Client          *handler.ClientHandler
	Purchase        *handler.PurchaseHandler
	Sale            *handler.SaleHandler
	ProductionOrder *handler.ProductionOrderHandler
}

// Config holds router dependencies
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	HTTP           config.HTTPConfig
	Logger         *zap.Logger
}

// New builds the gin engine with middleware and all API routes
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	if cfg.HTTP.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))
	}

	jwtConfig := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtConfig.TokenBlacklist = cfg.TokenBlacklist
	jwtConfig.Logger = cfg.Logger
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	engine.GET("/health", cfg.Handlers.Health.Check)

	api := engine.Group("/api/v1")
	registerRoutes(api, cfg.Handlers)

	return engine
}

func corsConfig(httpCfg config.HTTPConfig) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(httpCfg.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = httpCfg.CORSAllowOrigins
	}
	if len(httpCfg.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = httpCfg.CORSAllowMethods
	}
	if len(httpCfg.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = httpCfg.CORSAllowHeaders
	}
	return corsCfg
}

func registerRoutes(api *gin.RouterGroup, h Handlers) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", h.Auth.Me)
		authGroup.PUT("/password", h.Auth.ChangePassword)
	}

	orgs := api.Group("/organizations")
	{
		orgs.POST("", h.Organization.Create)
		orgs.GET("/current", h.Organization.GetCurrent)
		orgs.PUT("/current", h.Organization.Update)
	}

	users := api.Group("/users")
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.GetByID)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Deactivate)
	}

	units := api.Group("/units")
	{
		units.POST("", h.Unit.Create)
		units.GET("", h.Unit.List)
		units.GET("/:id", h.Unit.GetByID)
		units.PUT("/:id", h.Unit.Update)
		units.DELETE("/:id", h.Unit.Delete)
	}

	products := api.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/below-reorder", h.Product.ListBelowReorderLevel)
		products.GET("/:id", h.Product.GetByID)
		products.PUT("/:id", h.Product.Update)
		products.PUT("/:id/allowed-units", h.Product.SetAllowedUnits)
		products.DELETE("/:id", h.Product.Delete)
	}

	vendors := api.Group("/vendors")
	{
		vendors.POST("", h.Vendor.Create)
		vendors.GET("", h.Vendor.List)
		vendors.GET("/:id", h.Vendor.GetByID)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.DELETE("/:id", h.Vendor.Delete)
	}

	clients := api.Group("/clients")
	{
		clients.POST("", h.Client.Create)
		clients.GET("", h.Client.List)
		clients.GET("/:id", h.Client.GetByID)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}

	purchases := api.Group("/purchases")
	{
		purchases.POST("", h.Purchase.Create)
		purchases.GET("", h.Purchase.List)
		purchases.GET("/:id", h.Purchase.GetByID)
		purchases.PUT("/:id", h.Purchase.Update)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}

	sales := api.Group("/sales")
	{
		sales.POST("", h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.GetByID)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
	}

	orders := api.Group("/production-orders")
	{
		orders.POST("", h.ProductionOrder.Create)
		orders.GET("", h.ProductionOrder.List)
		orders.GET("/:id", h.ProductionOrder.GetByID)
		orders.PUT("/:id", h.ProductionOrder.Update)
		orders.POST("/:id/status", h.ProductionOrder.ChangeStatus)
		orders.DELETE("/:id", h.ProductionOrder.Delete)
	}
}
