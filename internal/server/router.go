package server

import (
	"time"

	"store_manager/internal/authz"
	"store_manager/internal/handlers"
	"store_manager/internal/logger"
	"store_manager/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Handlers struct {
	Products  *handlers.ProductHandler
	Customers *handlers.CustomerHandler
	Orders    *handlers.OrderHandler
	Dashboard *handlers.DashboardHandler
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
}

type RouterConfig struct {
	ServiceName    string
	CORSOrigins    []string
	RequestTimeout time.Duration
	Tokens         middleware.TokenValidator
	Policy         *authz.Policy
	Handlers       Handlers
	Logger         *logger.Logger
}

// NewRouter wires every route. Token and health endpoints are public; the
// rest of /api goes through authentication and the access policy.
func NewRouter(cfg RouterConfig) *gin.Engine {
	handlers.RegisterValidation()

	router := gin.New()
	router.Use(
		otelgin.Middleware(cfg.ServiceName),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.CORS(cfg.CORSOrigins),
		gin.Recovery(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	h := cfg.Handlers

	public := router.Group("/api")
	{
		public.GET("/health/", h.Health.Check)
		public.POST("/token/", h.Auth.ObtainToken)
		public.POST("/token/refresh/", h.Auth.RefreshToken)
		public.POST("/token/revoke/", h.Auth.RevokeToken)
	}

	api := router.Group("/api", middleware.Authenticate(cfg.Tokens, cfg.Policy, cfg.Logger))
	{
		api.GET("/dashboard-stats/", h.Dashboard.Stats)

		products := api.Group("/products")
		products.GET("/", h.Products.List)
		products.POST("/", h.Products.Create)
		products.GET("/:id/", h.Products.Get)
		products.PUT("/:id/", h.Products.Update)
		products.PATCH("/:id/", h.Products.PartialUpdate)
		products.DELETE("/:id/", h.Products.Delete)

		customers := api.Group("/customers")
		customers.GET("/", h.Customers.List)
		customers.POST("/", h.Customers.Create)
		customers.GET("/:id/", h.Customers.Get)
		customers.PUT("/:id/", h.Customers.Update)
		customers.PATCH("/:id/", h.Customers.PartialUpdate)
		customers.DELETE("/:id/", h.Customers.Delete)

		orders := api.Group("/orders")
		orders.GET("/", h.Orders.List)
		orders.POST("/", h.Orders.Create)
		orders.GET("/:id/", h.Orders.Get)
		orders.GET("/:id/items/", h.Orders.Items)
		orders.PUT("/:id/", h.Orders.Update)
		orders.PATCH("/:id/", h.Orders.PartialUpdate)
		orders.DELETE("/:id/", h.Orders.Delete)
	}

	return router
}
