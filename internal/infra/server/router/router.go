// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/salesledger/backend/internal/integration/entrypoint/controller"
	"github.com/salesledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	logger                *slog.Logger
	healthController      *controller.HealthController
	authController        *controller.AuthController
	productController     *controller.ProductController
	customerController    *controller.CustomerController
	transactionController *controller.TransactionController
	reportController      *controller.ReportController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.LoginRateLimiter
	apiLimiter            *limiter.Limiter
	authMiddleware        *middleware.AuthMiddleware
}

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Product     *controller.ProductController
	Customer    *controller.CustomerController
	Transaction *controller.TransactionController
	Report      *controller.ReportController
	Dashboard   *controller.DashboardController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	logger *slog.Logger,
	controllers Controllers,
	loginRateLimiter *middleware.LoginRateLimiter,
	apiLimiter *limiter.Limiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		logger:                logger,
		healthController:      controllers.Health,
		authController:        controllers.Auth,
		productController:     controllers.Product,
		customerController:    controllers.Customer,
		transactionController: controllers.Transaction,
		reportController:      controllers.Report,
		dashboardController:   controllers.Dashboard,
		loginRateLimiter:      loginRateLimiter,
		apiLimiter:            apiLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.StructuredLogging(r.logger))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.RateLimit(r.apiLimiter))

	authenticated := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireAdmin()

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authMiddleware.OptionalAuthenticate(), r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	// Catalog reads are open to every signed-in user; writes are admin-only.
	products := v1.Group("/products")
	products.Use(authenticated)
	{
		products.GET("", r.productController.List)
		products.GET("/:id", r.productController.Get)
		products.POST("", adminOnly, r.productController.Create)
		products.PATCH("/:id", adminOnly, r.productController.Update)
		products.DELETE("/:id", adminOnly, r.productController.Delete)
	}

	customers := v1.Group("/customers")
	customers.Use(authenticated)
	{
		customers.GET("", r.customerController.List)
		customers.POST("", r.customerController.Create)
		customers.GET("/:id", r.customerController.Get)
		customers.PUT("/:id", r.customerController.Update)
		customers.DELETE("/:id", adminOnly, r.customerController.Delete)
		customers.GET("/:id/transactions", r.customerController.Transactions)
	}

	transactions := v1.Group("/transactions")
	transactions.Use(authenticated)
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
		transactions.PATCH("/lines/:lineId/status", r.transactionController.SetLineStatus)
	}

	reports := v1.Group("/reports")
	reports.Use(authenticated, adminOnly)
	{
		reports.GET("/product-sales", r.reportController.ProductSales)
		reports.GET("/customer-transactions", r.reportController.CustomerTransactions)
		reports.GET("/sales-performance", r.reportController.SalesPerformance)
		reports.GET("/income-expense", r.reportController.IncomeExpense)
		reports.GET("/daily", r.reportController.Daily)
		reports.GET("/monthly", r.reportController.Monthly)
	}

	dashboard := v1.Group("/dashboard")
	dashboard.Use(authenticated, adminOnly)
	{
		dashboard.GET("/summary", r.dashboardController.GetSummary)
		dashboard.GET("/recent-transactions", r.dashboardController.GetRecentTransactions)
		dashboard.GET("/top-products", r.dashboardController.GetTopProducts)
		dashboard.GET("/top-customers", r.dashboardController.GetTopCustomers)
		dashboard.GET("/sales-chart", r.dashboardController.GetSalesChart)
		dashboard.GET("/income-expense-chart", r.dashboardController.GetIncomeExpenseChart)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
