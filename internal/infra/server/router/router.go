// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups every HTTP controller the router mounts.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Vendor      *controller.VendorController
	Product     *controller.ProductController
	Transaction *controller.TransactionController
	Settlement  *controller.SettlementController
	Audit       *controller.AuditController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
	logger           *slog.Logger
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
		logger:           logger,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.controllers.Auth.Login)
	}

	// Everything below requires an operator token when auth is enabled.
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	vendors := protected.Group("/vendors")
	{
		vendors.GET("", r.controllers.Vendor.List)
		vendors.POST("", r.controllers.Vendor.Create)
		vendors.GET("/:id", r.controllers.Vendor.Statement)
		vendors.PATCH("/:id", r.controllers.Vendor.Update)
		vendors.DELETE("/:id", r.controllers.Vendor.Delete)
		vendors.GET("/:id/payments", r.controllers.Vendor.ListPayments)
		vendors.POST("/:id/payments", r.controllers.Vendor.CreatePayment)
	}

	products := protected.Group("/products")
	{
		products.GET("", r.controllers.Product.List)
		products.POST("", r.controllers.Product.Create)
		products.PATCH("/:id", r.controllers.Product.Update)
		products.DELETE("/:id", r.controllers.Product.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.controllers.Transaction.List)
		transactions.POST("", r.controllers.Transaction.Create)
		transactions.GET("/export", r.controllers.Transaction.Export)
		transactions.PATCH("/:id", r.controllers.Transaction.Update)
		transactions.DELETE("/:id", r.controllers.Transaction.Delete)
		transactions.POST("/:id/return", r.controllers.Transaction.Return)
	}

	settlements := protected.Group("/settlements")
	{
		settlements.GET("", r.controllers.Settlement.List)
		settlements.POST("", r.controllers.Settlement.Issue)
		settlements.GET("/daily", r.controllers.Settlement.Daily)
		settlements.GET("/daily/export", r.controllers.Settlement.DailyExport)
		settlements.GET("/print-config", r.controllers.Settlement.PrintConfig)
		settlements.GET("/:id", r.controllers.Settlement.Get)
		settlements.GET("/:id/export", r.controllers.Settlement.Export)
	}

	protected.GET("/audit-logs", r.controllers.Audit.List)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
