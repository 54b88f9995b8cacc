package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/auth"
	"github.com/jhoicas/pos-backoffice/internal/application/cashregister"
	"github.com/jhoicas/pos-backoffice/internal/application/catalog"
	"github.com/jhoicas/pos-backoffice/internal/application/customers"
	"github.com/jhoicas/pos-backoffice/internal/application/expenses"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/purchasing"
	"github.com/jhoicas/pos-backoffice/internal/application/reports"
	"github.com/jhoicas/pos-backoffice/internal/application/sales"
	"github.com/jhoicas/pos-backoffice/internal/application/settings"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/realtime"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Catalog      *catalog.UseCase
	CreateSale   *sales.CreateSaleUseCase
	VoidSale     *sales.VoidSaleUseCase
	SaleQuery    *sales.QueryUseCase
	SaleTicket   *sales.TicketUseCase
	CashRegister *cashregister.UseCase
	AdjustStock  *inventory.AdjustStockUseCase
	StockQuery   *inventory.StockQueryUseCase
	Purchases    *purchasing.UseCase
	Settings     *settings.UseCase
	Reports      *reports.UseCase
	Expenses     *expenses.UseCase
	Customers    *customers.UseCase
	Hub          *realtime.Hub // opcional; sin hub no se expone /ws
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, alta solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(entity.RoleAdmin, entity.RoleSupervisor, entity.RoleCajero)
	managers := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	// Ventas
	saleGroup := protected.Group("/sales", staff)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.VoidSale, deps.SaleQuery, deps.SaleTicket)
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/customer/:customer_id", saleHandler.ByCustomer)
	saleGroup.Get("/:id", saleHandler.GetByID)
	saleGroup.Get("/:id/ticket", saleHandler.Ticket)
	saleGroup.Put("/:id/void", managers, saleHandler.Void)

	// Caja
	cashGroup := protected.Group("/cash-registers", staff)
	cashHandler := NewCashRegisterHandler(deps.CashRegister)
	cashGroup.Post("/open", cashHandler.Open)
	cashGroup.Get("/open", cashHandler.OpenStatus)
	cashGroup.Get("/last-closed", cashHandler.LastClosed)
	cashGroup.Post("/movements", cashHandler.RecordMovement)
	cashGroup.Get("/", cashHandler.List)
	cashGroup.Put("/:id/close", cashHandler.Close)
	cashGroup.Get("/:id/movements", cashHandler.Movements)
	cashGroup.Get("/:id/balance", cashHandler.Balance)

	// Catálogo
	productGroup := protected.Group("/products", staff)
	productHandler := NewProductHandler(deps.Catalog)
	productGroup.Get("/", productHandler.List)
	productGroup.Get("/barcode/:barcode", productHandler.GetByBarcode)
	productGroup.Get("/:id", productHandler.GetByID)
	productGroup.Post("/", managers, productHandler.Create)
	productGroup.Put("/:id", managers, productHandler.Update)
	productGroup.Delete("/:id", managers, productHandler.Delete)

	// Stock
	stockGroup := protected.Group("/stock", staff)
	stockHandler := NewStockHandler(deps.AdjustStock, deps.StockQuery)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/low", stockHandler.Low)
	stockGroup.Post("/adjust", managers, stockHandler.Adjust)
	stockGroup.Get("/:product_id", stockHandler.GetByProduct)

	// Compras
	purchaseGroup := protected.Group("/purchases", managers)
	purchaseHandler := NewPurchaseHandler(deps.Purchases)
	purchaseGroup.Post("/", purchaseHandler.Create)
	purchaseGroup.Get("/:id", purchaseHandler.GetByID)

	// Configuración
	settingsGroup := protected.Group("/settings", staff)
	settingsHandler := NewSettingsHandler(deps.Settings)
	settingsGroup.Get("/system", settingsHandler.System)
	settingsGroup.Put("/system", RequireRole(entity.RoleAdmin), settingsHandler.UpdateSystem)
	settingsGroup.Get("/print", settingsHandler.Print)
	settingsGroup.Get("/branch", settingsHandler.Branch)

	// Reportes
	reportGroup := protected.Group("/reports", staff)
	reportHandler := NewReportHandler(deps.Reports)
	reportGroup.Get("/stock-movements", managers, reportHandler.StockMovements)
	reportGroup.Get("/cash-registers", reportHandler.CashRegisters)
	reportGroup.Get("/cash-registers/:id/summary", reportHandler.CashRegisterSummary)
	reportGroup.Get("/sales", reportHandler.Sales)
	reportGroup.Get("/sales/summary", managers, reportHandler.SalesSummary)
	reportGroup.Get("/sales/by-product", managers, reportHandler.SalesByProduct)

	// Gastos
	expenseGroup := protected.Group("/expenses", staff)
	expenseHandler := NewExpenseHandler(deps.Expenses)
	expenseGroup.Post("/", expenseHandler.Create)
	expenseGroup.Get("/", expenseHandler.List)
	expenseGroup.Put("/:id", expenseHandler.Update)
	expenseGroup.Delete("/:id", expenseHandler.Delete)

	// Clientes y cuentas corrientes
	customerGroup := protected.Group("/customers", staff)
	customerHandler := NewCustomerHandler(deps.Customers)
	customerGroup.Get("/", customerHandler.Search)
	customerGroup.Post("/", customerHandler.Create)
	customerGroup.Get("/export", managers, customerHandler.Export)
	customerGroup.Get("/:id", customerHandler.GetByID)
	customerGroup.Put("/:id", customerHandler.Update)
	customerGroup.Delete("/:id", managers, customerHandler.Delete)
	customerGroup.Get("/:id/account", customerHandler.Statement)
	customerGroup.Post("/:id/account", customerHandler.RecordMovement)

	// Eventos en tiempo real
	if deps.Hub != nil {
		rt := NewRealtimeHandler(deps.Hub)
		app.Use("/ws", rt.RequireUpgrade)
		app.Get("/ws", WebSocketAuth(deps.JWTSecret), rt.Stream())
	}
}
