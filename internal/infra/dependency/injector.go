// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/config"
	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	"github.com/ledger-backoffice/backend/internal/application/usecase/auth"
	"github.com/ledger-backoffice/backend/internal/application/usecase/payment"
	"github.com/ledger-backoffice/backend/internal/application/usecase/product"
	"github.com/ledger-backoffice/backend/internal/application/usecase/settlement"
	"github.com/ledger-backoffice/backend/internal/application/usecase/statement"
	"github.com/ledger-backoffice/backend/internal/application/usecase/transaction"
	"github.com/ledger-backoffice/backend/internal/application/usecase/vendor"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/infra/server/router"
	"github.com/ledger-backoffice/backend/internal/integration/adapters"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/ledger-backoffice/backend/internal/integration/export"
	"github.com/ledger-backoffice/backend/internal/integration/persistence"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/memory"
)

// Repositories bundles the ledger store implementations.
type Repositories struct {
	Vendors      adapter.VendorRepository
	Products     adapter.ProductRepository
	Transactions adapter.TransactionRepository
	Payments     adapter.PaymentRepository
	Settlements  adapter.SettlementRepository
	AuditLogs    adapter.AuditLogRepository
}

// NewGormRepositories builds repositories on a gorm connection.
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Vendors:      persistence.NewVendorRepository(db),
		Products:     persistence.NewProductRepository(db),
		Transactions: persistence.NewTransactionRepository(db),
		Payments:     persistence.NewPaymentRepository(db),
		Settlements:  persistence.NewSettlementRepository(db),
		AuditLogs:    persistence.NewAuditLogRepository(db),
	}
}

// NewMemoryRepositories builds repositories on an in-process store.
func NewMemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Vendors:      store.Vendors(),
		Products:     store.Products(),
		Transactions: store.Transactions(),
		Payments:     store.Payments(),
		Settlements:  store.Settlements(),
		AuditLogs:    store.AuditLogs(),
	}
}

// Options holds the optional collaborators of the injector.
type Options struct {
	// AuditSink receives audit entries. Defaults to Repositories.AuditLogs.
	AuditSink adapter.AuditSink
	// HealthCheck reports store connectivity for GET /health.
	HealthCheck func() bool
	// QueueDepth reports the audit queue backlog. Nil when entries are written directly.
	QueueDepth controller.QueueDepthFunc
	// Clock defaults to the KST wall clock.
	Clock  valueobject.Clock
	Logger *slog.Logger
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	Repositories Repositories
	Router       *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, repos Repositories, opts Options) *Injector {
	clock := opts.Clock
	if clock == nil {
		clock = valueobject.NewKSTClock()
	}
	sink := opts.AuditSink
	if sink == nil {
		sink = repos.AuditLogs
	}

	recorder := audit.NewRecorder(sink, clock, cfg.Audit.DefaultActor)
	renderer := export.NewExcelRenderer()

	// Create adapters/services
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Create vendor use cases
	listVendorsUseCase := vendor.NewListVendorsUseCase(repos.Vendors, repos.Transactions, clock)
	createVendorUseCase := vendor.NewCreateVendorUseCase(repos.Vendors, recorder, clock)
	updateVendorUseCase := vendor.NewUpdateVendorUseCase(repos.Vendors, recorder, clock)
	deleteVendorUseCase := vendor.NewDeleteVendorUseCase(repos.Vendors, recorder, clock)
	statementUseCase := statement.NewGetVendorStatementUseCase(repos.Vendors, repos.Transactions, repos.Payments, clock)

	// Create payment use cases
	listPaymentsUseCase := payment.NewListPaymentsUseCase(repos.Payments, repos.Vendors)
	createPaymentUseCase := payment.NewCreatePaymentUseCase(repos.Payments, repos.Vendors, recorder, clock)

	// Create product use cases
	listProductsUseCase := product.NewListProductsUseCase(repos.Products)
	createProductUseCase := product.NewCreateProductUseCase(repos.Products, recorder, clock)
	updateProductUseCase := product.NewUpdateProductUseCase(repos.Products, recorder, clock)
	deleteProductUseCase := product.NewDeleteProductUseCase(repos.Products, recorder, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(repos.Transactions, repos.Vendors, clock)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(repos.Transactions, repos.Vendors, recorder, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(repos.Transactions, repos.Vendors, recorder, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(repos.Transactions, recorder, clock)
	exportTransactionsUseCase := transaction.NewExportTransactionsUseCase(repos.Transactions, repos.Vendors, renderer, clock)
	createReturnUseCase := transaction.NewCreateReturnUseCase(repos.Transactions, recorder, clock)

	// Create settlement use cases
	issueSettlementUseCase := settlement.NewIssueSettlementUseCase(repos.Settlements, repos.Vendors, recorder, clock)
	listSettlementsUseCase := settlement.NewListSettlementsUseCase(repos.Settlements, repos.Vendors)
	getSettlementUseCase := settlement.NewGetSettlementUseCase(repos.Settlements, repos.Vendors)
	exportSettlementUseCase := settlement.NewExportSettlementUseCase(getSettlementUseCase, renderer)
	dailySheetUseCase := settlement.NewGetDailySheetUseCase(repos.Transactions, repos.Vendors)
	exportDailySheetUseCase := settlement.NewExportDailySheetUseCase(dailySheetUseCase, renderer)
	printConfigUseCase := settlement.NewGetPrintConfigUseCase(settlement.PrintConfig{
		BusinessNumber: cfg.Supplier.BusinessNumber,
		CompanyName:    cfg.Supplier.CompanyName,
		OwnerName:      cfg.Supplier.OwnerName,
		Address:        cfg.Supplier.Address,
		BusinessType:   cfg.Supplier.BusinessType,
		ItemType:       cfg.Supplier.ItemType,
	})

	// Create audit and auth use cases
	listAuditLogsUseCase := audit.NewListAuditLogsUseCase(repos.AuditLogs)
	loginUseCase := auth.NewLoginOperatorUseCase(auth.OperatorCredentials{
		Username:     cfg.Auth.OperatorUsername,
		PasswordHash: cfg.Auth.OperatorPasswordHash,
	}, passwordService, tokenService)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(opts.HealthCheck, opts.QueueDepth),
		Auth:   controller.NewAuthController(loginUseCase),
		Vendor: controller.NewVendorController(
			listVendorsUseCase,
			createVendorUseCase,
			updateVendorUseCase,
			deleteVendorUseCase,
			statementUseCase,
			listPaymentsUseCase,
			createPaymentUseCase,
		),
		Product: controller.NewProductController(
			listProductsUseCase,
			createProductUseCase,
			updateProductUseCase,
			deleteProductUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			exportTransactionsUseCase,
			createReturnUseCase,
		),
		Settlement: controller.NewSettlementController(
			issueSettlementUseCase,
			listSettlementsUseCase,
			getSettlementUseCase,
			exportSettlementUseCase,
			dailySheetUseCase,
			exportDailySheetUseCase,
			printConfigUseCase,
		),
		Audit: controller.NewAuditController(listAuditLogsUseCase),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, cfg.Auth.Enabled())

	return &Injector{
		Config:       cfg,
		Repositories: repos,
		Router:       router.NewRouter(controllers, loginRateLimiter, authMiddleware, opts.Logger),
	}
}
