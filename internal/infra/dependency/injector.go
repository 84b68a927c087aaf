// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/salesledger/backend/config"
	"github.com/salesledger/backend/internal/application/usecase/auth"
	"github.com/salesledger/backend/internal/application/usecase/customer"
	"github.com/salesledger/backend/internal/application/usecase/dashboard"
	"github.com/salesledger/backend/internal/application/usecase/product"
	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/application/usecase/transaction"
	"github.com/salesledger/backend/internal/domain/valueobject"
	"github.com/salesledger/backend/internal/infra/db"
	"github.com/salesledger/backend/internal/infra/server/router"
	"github.com/salesledger/backend/internal/integration/adapters"
	"github.com/salesledger/backend/internal/integration/cache"
	"github.com/salesledger/backend/internal/integration/entrypoint/controller"
	"github.com/salesledger/backend/internal/integration/entrypoint/middleware"
	"github.com/salesledger/backend/internal/integration/filesink"
	"github.com/salesledger/backend/internal/integration/persistence"
	"github.com/salesledger/backend/internal/integration/render"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	Database  *db.Database
	Redis     *redis.Client
	Router    *router.Router
	SeedAdmin *auth.SeedAdminUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case reports are not cached and rate-limit
// counters stay in memory.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client, logger *slog.Logger) (*Injector, error) {
	gormDB := database.DB()

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	productRepo := persistence.NewProductRepository(gormDB)
	customerRepo := persistence.NewCustomerRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	reportRepo := persistence.NewReportRepository(gormDB)
	dashboardRepo := persistence.NewDashboardRepository(gormDB)

	// Adapters
	passwordService := adapters.NewPasswordService(cfg.Security.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	reportCache := cache.NewReportCache(redisClient, cfg.Report.CacheTTL)

	locale := valueobject.LocaleFor(cfg.Report.Locale)
	if cfg.Report.CurrencyPrefix != "" {
		locale = locale.WithCurrencyPrefix(cfg.Report.CurrencyPrefix)
	}
	renderer := render.NewRenderer(render.Options{
		Locale:         locale,
		PDFCompression: cfg.Report.PDFCompression,
	})
	sink := filesink.NewTempFileSink(cfg.Report.TempDir)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	seedAdminUseCase := auth.NewSeedAdminUseCase(userRepo, passwordService)

	// Catalog use cases
	createProductUseCase := product.NewCreateProductUseCase(productRepo)
	getProductUseCase := product.NewGetProductUseCase(productRepo)
	listProductsUseCase := product.NewListProductsUseCase(productRepo)
	updateProductUseCase := product.NewUpdateProductUseCase(productRepo, reportCache)
	deleteProductUseCase := product.NewDeleteProductUseCase(productRepo)
	createCustomerUseCase := customer.NewCreateCustomerUseCase(customerRepo, userRepo)
	listCustomersUseCase := customer.NewListCustomersUseCase(customerRepo)
	getCustomerUseCase := customer.NewGetCustomerUseCase(customerRepo)
	updateCustomerUseCase := customer.NewUpdateCustomerUseCase(customerRepo, userRepo, reportCache)
	deleteCustomerUseCase := customer.NewDeleteCustomerUseCase(customerRepo)

	// Transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, productRepo, customerRepo, userRepo, reportCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, productRepo, customerRepo, userRepo, reportCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, reportCache)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	setLineStatusUseCase := transaction.NewSetLineStatusUseCase(transactionRepo)
	listCustomerTransactionsUseCase := customer.NewListCustomerTransactionsUseCase(customerRepo, listTransactionsUseCase)

	// Reporting use cases
	generateReportUseCase := report.NewGenerateReportUseCase(reportRepo, reportCache)
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(dashboardRepo)
	getRecentTransactionsUseCase := dashboard.NewGetRecentTransactionsUseCase(dashboardRepo)
	getTopProductsUseCase := dashboard.NewGetTopProductsUseCase(reportRepo)
	getTopCustomersUseCase := dashboard.NewGetTopCustomersUseCase(reportRepo)
	getSalesChartUseCase := dashboard.NewGetSalesChartUseCase(reportRepo)
	getIncomeExpenseChartUseCase := dashboard.NewGetIncomeExpenseChartUseCase(reportRepo)

	// Controllers
	healthChecks := map[string]controller.HealthCheck{
		"database": database.Ping,
		"redis":    nil,
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(healthChecks),
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		),
		Product: controller.NewProductController(
			createProductUseCase,
			getProductUseCase,
			listProductsUseCase,
			updateProductUseCase,
			deleteProductUseCase,
		),
		Customer: controller.NewCustomerController(
			createCustomerUseCase,
			listCustomersUseCase,
			getCustomerUseCase,
			updateCustomerUseCase,
			deleteCustomerUseCase,
			listCustomerTransactionsUseCase,
		),
		Transaction: controller.NewTransactionController(
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			listTransactionsUseCase,
			getTransactionUseCase,
			setLineStatusUseCase,
		),
		Report: controller.NewReportController(generateReportUseCase, renderer, sink),
		Dashboard: controller.NewDashboardController(
			getSummaryUseCase,
			getRecentTransactionsUseCase,
			getTopProductsUseCase,
			getTopCustomersUseCase,
			getSalesChartUseCase,
			getIncomeExpenseChartUseCase,
		),
	}

	// Middleware
	loginRateLimiter := middleware.NewLoginRateLimiter(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)
	apiLimiter, err := middleware.NewAPILimiter(cfg.RateLimit.API, redisClient)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit.API, err)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(logger, controllers, loginRateLimiter, apiLimiter, authMiddleware)

	return &Injector{
		Config:    cfg,
		Database:  database,
		Redis:     redisClient,
		Router:    r,
		SeedAdmin: seedAdminUseCase,
	}, nil
}
