package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/threadline/storefront-api/docs"
	"github.com/threadline/storefront-api/internal/api/handler"
	"github.com/threadline/storefront-api/internal/api/middleware"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/service"
	"github.com/threadline/storefront-api/internal/infrastructure/backend"
	"github.com/threadline/storefront-api/internal/infrastructure/config"
	mongodb "github.com/threadline/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/threadline/storefront-api/internal/infrastructure/db/redis"
)

// Dependencies carries everything the router needs to assemble the service.
type Dependencies struct {
	Config  *config.Config
	Log     zerolog.Logger
	Mongo   *mongo.Database
	Redis   *redis.Client
	Backend *backend.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	cfg := deps.Config

	// --- Stores and gateways ---
	sessionStore := redisdb.NewSessionStore(deps.Redis, cfg.Session.TTL)
	cartRepo := redisdb.NewCartRepository(deps.Redis, cfg.Session.CartTTL)
	pageRepo := mongodb.NewPageRepository(deps.Mongo)
	storefrontRepo := mongodb.NewStorefrontRepository(deps.Mongo)

	// --- Services ---
	sessions := service.NewSessionService(sessionStore, deps.Backend, deps.Log)
	carts := service.NewCartService(cartRepo, deps.Log)
	orders := service.NewOrderService(deps.Backend, cartRepo, deps.Log)
	pages := service.NewPageService(pageRepo, storefrontRepo, deps.Log)

	// --- Handlers ---
	maxAge := int(cfg.Session.TTL.Seconds())
	authHandler := handler.NewAuthHandler(sessions, cfg.Session.CookieName, maxAge, cfg.Session.Secure)
	cartHandler := handler.NewCartHandler(carts)
	orderHandler := handler.NewOrderHandler(orders, sessions)
	catalogHandler := handler.NewCatalogHandler(deps.Backend)
	pageHandler := handler.NewPageHandler(pages)

	sessionRequired := middleware.Session(middleware.SessionConfig{
		Sessions:   sessions,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
	})
	adminOnly := middleware.RBAC(domain.RoleSuperAdmin, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, sessionRequired)
	e.GET("/auth/session", authHandler.Session, sessionRequired)
	e.PATCH("/auth/session", authHandler.Update, sessionRequired)

	// --- Cart routes ---
	cart := e.Group("/cart", sessionRequired)
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items", cartHandler.ChangeQuantity)
	cart.DELETE("/items", cartHandler.RemoveItem)
	cart.POST("/coupon", cartHandler.ApplyCoupon)
	cart.DELETE("/coupon", cartHandler.RemoveCoupon)

	// --- Order routes ---
	e.GET("/orders/track/:id", orderHandler.Track)
	ord := e.Group("/orders", sessionRequired)
	ord.POST("", orderHandler.Create)
	ord.GET("", orderHandler.List)
	ord.GET("/:id", orderHandler.Detail)

	// --- Catalog routes (public pass-through) ---
	cat := e.Group("/catalog")
	cat.GET("/categories/tree", catalogHandler.CategoryTree)
	cat.GET("/categories/products", catalogHandler.CategoryProducts)
	cat.GET("/products", catalogHandler.Products)
	cat.GET("/products/:slug", catalogHandler.Product)
	cat.GET("/combos", catalogHandler.Combos)
	cat.GET("/combos/:id", catalogHandler.Combo)

	// --- Content routes ---
	e.GET("/pages/:slug", pageHandler.Page)
	e.PUT("/pages/:slug", pageHandler.Upsert, sessionRequired, adminOnly)
	e.GET("/storefront", pageHandler.Settings)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
