package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/Comercial-api/internal/application/accounting"
	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/payments"
	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/internal/application/sales"
	"github.com/jhoicas/Comercial-api/internal/domain/authz"
	"github.com/jhoicas/Comercial-api/internal/domain/ledger"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	infralock "github.com/jhoicas/Comercial-api/internal/infrastructure/lock"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Comercial-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Comercial-api/internal/interfaces/http"
	"github.com/jhoicas/Comercial-api/internal/observability/metrics"
	"github.com/jhoicas/Comercial-api/pkg/config"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner ports.TxRunner
		repos    repository.Repositories
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewSeededStore()
		txRunner, repos = store, store.Repositories()
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepositories(pool)
	}

	// Lock distribuido opcional para confirmar pagos; la exclusión real la da la DB.
	var locker ports.Locker
	if cfg.Redis.Enabled() {
		rdb, err := infralock.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible; se confirma sin lock distribuido")
		} else {
			defer rdb.Close()
			locker = infralock.NewRedisLocker(rdb)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ledgerMetrics := metrics.New(registry, metrics.Config{ServiceName: cfg.App.Name, Environment: cfg.App.Env})

	accountCodes := ledger.AccountCodes{
		Cash:       cfg.Ledger.CashAccount,
		Card:       cfg.Ledger.CardAccount,
		Receivable: cfg.Ledger.ReceivableAccount,
	}
	ledgerUC := accounting.NewLedgerUseCase(repos)
	movementUC := sales.NewMovementUseCase(txRunner, repos, infrapdf.NewMarotoRenderer(cfg.App.Name), ledgerMetrics)
	paymentUC := payments.NewPaymentUseCase(txRunner, repos, ledgerUC, accountCodes, locker, ledgerMetrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), ledgerMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comercial API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:  movementUC,
		PaymentUC:   paymentUC,
		LedgerUC:    ledgerUC,
		ProductUC:   catalog.NewProductUseCase(repos.Products),
		ContactUC:   catalog.NewContactUseCase(repos.Contacts, cfg.Ledger.PhoneRegion),
		OperationUC: catalog.NewOperationUseCase(repos.Operations, repos.PaymentMethods),
		Policy:      authz.DefaultPolicy(),
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		Gatherer:    registry,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
