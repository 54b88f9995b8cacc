package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/pos-backoffice/docs"
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
	infrapdf "github.com/jhoicas/pos-backoffice/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/realtime"
	httpRouter "github.com/jhoicas/pos-backoffice/internal/interfaces/http"
	"github.com/jhoicas/pos-backoffice/pkg/config"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Strs("archivos", applied).Msg("migraciones aplicadas")
	}

	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	registerRepo := postgres.NewCashRegisterRepository(pool)
	cashMovementRepo := postgres.NewCashMovementRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos en tiempo real: el hub vive hasta el apagado
	hub := realtime.NewHub(cfg.Realtime.Buffer, log)
	go hub.Run(ctx)

	ledger := inventory.NewLedger()
	saleQueries := sales.NewQueryUseCase(saleRepo, settingsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		c.Type("json")
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		if err := pool.Ping(c.Context()); err != nil {
			dbStatus = "down"
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": dbStatus, "ws_clients": hub.Clients()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Catalog:      catalog.NewUseCase(txRunner, productRepo, log),
		CreateSale:   sales.NewCreateSaleUseCase(txRunner, ledger, saleRepo, settingsRepo, hub, log),
		VoidSale:     sales.NewVoidSaleUseCase(txRunner, hub, log),
		SaleQuery:    saleQueries,
		SaleTicket:   sales.NewTicketUseCase(saleQueries, settingsRepo, infrapdf.NewTicketGenerator()),
		CashRegister: cashregister.NewUseCase(txRunner, registerRepo, cashMovementRepo, settingsRepo, hub, log),
		AdjustStock:  inventory.NewAdjustStockUseCase(txRunner, ledger, hub, log),
		StockQuery:   inventory.NewStockQueryUseCase(stockRepo, settingsRepo),
		Purchases:    purchasing.NewUseCase(txRunner, ledger, purchaseRepo, hub, log),
		Settings:     settings.NewUseCase(settingsRepo, log),
		Reports:      reports.NewUseCase(reportRepo, registerRepo, cashMovementRepo),
		Expenses:     expenses.NewUseCase(txRunner, expenseRepo, hub, log),
		Customers:    customers.NewUseCase(txRunner, customerRepo, accountRepo, log),
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Str("cors", strings.TrimSpace(cfg.HTTP.CORSOrigins)).Msg("servidor HTTP escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()

	log.Info().Msg("aplicación detenida")
}
