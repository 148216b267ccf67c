package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/medtrack-api/internal/application/auth"
	appcompany "github.com/tu-usuario/medtrack-api/internal/application/company"
	appreconcile "github.com/tu-usuario/medtrack-api/internal/application/reconcile"
	appscan "github.com/tu-usuario/medtrack-api/internal/application/scan"
	"github.com/tu-usuario/medtrack-api/internal/infrastructure/observability"
	"github.com/tu-usuario/medtrack-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/medtrack-api/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/medtrack-api/internal/interfaces/http"
	"github.com/tu-usuario/medtrack-api/pkg/config"
	"github.com/tu-usuario/medtrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := rediscache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	specRepo := postgres.NewSpecItemRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	discRepo := postgres.NewDiscrepancyRepository(pool)
	hashRepo := postgres.NewManufacturingHashRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	scanStore := rediscache.NewScanStore(redisClient)

	var observer appreconcile.Observer = appreconcile.NopObserver{}
	if cfg.Metrics.Enabled {
		observer = observability.NewPrometheusObserver(nil)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
	}

	reconcileUC := appreconcile.NewUseCase(
		txRunner, specRepo, invRepo, discRepo, companyRepo,
		observer, log.Zerolog(),
	)
	scanUC := appscan.NewUseCase(
		specRepo, hashRepo, companyRepo,
		scanStore, scanStore, reconcileUC,
		log.Zerolog(),
	)
	companyUC := appcompany.NewCompanyUseCase(companyRepo)
	authUC := auth.NewAuthUseCase(companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		ReconcileUC: reconcileUC,
		ScanUC:      scanUC,
		JWTSecret:   cfg.JWT.Secret,
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
