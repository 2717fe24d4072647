package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
	"github.com/jhoicas/AlmacenObra-api/internal/infrastructure/memory"
	"github.com/jhoicas/AlmacenObra-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/AlmacenObra-api/internal/interfaces/http"
	"github.com/jhoicas/AlmacenObra-api/pkg/config"
	"github.com/jhoicas/AlmacenObra-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		ledgerRepo   repository.LedgerRepository
		shipmentRepo repository.ShipmentRepository
		txRunner     stock.TxRunner
	)
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		ledgerRepo = store
		shipmentRepo = store
		txRunner = store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema del ledger")
		}
		ledgerRepo = postgres.NewLedgerRepository(pool)
		shipmentRepo = postgres.NewShipmentRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	receiveUC := stock.NewReceiveStockUseCase(txRunner)
	issueUC := stock.NewIssueStockUseCase(txRunner)
	grnUC := stock.NewReceiveShipmentUseCase(txRunner)
	shipmentUC := stock.NewShipmentUseCase(txRunner, shipmentRepo)

	// Los timeouts del servidor acotan cada petición: un medio de almacenamiento
	// colgado degrada a error en lugar de dejar callers esperando para siempre.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerRepo:   ledgerRepo,
		ReceiveStock: receiveUC,
		IssueStock:   issueUC,
		ReceiveGRN:   grnUC,
		Shipments:    shipmentUC,
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
