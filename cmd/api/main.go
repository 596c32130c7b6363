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

	"github.com/jhoicas/tenebrio-farm/internal/application/production"
	"github.com/jhoicas/tenebrio-farm/internal/application/reference"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/tenebrio-farm/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/tenebrio-farm/internal/interfaces/http"
	"github.com/jhoicas/tenebrio-farm/pkg/config"
	"github.com/jhoicas/tenebrio-farm/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer st.close()

	if cfg.DB.AutoMigrate {
		if err := st.migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	prom := metrics.NewPrometheus()

	stockUC := stock.NewUseCase(st.tx, st.items, st.moves, prom, log.Component("stock"))
	recordUC := production.NewRecordProductionUseCase(st.tx, st.items, st.ref, prom, log.Component("production"))
	queryUC := production.NewQueryUseCase(
		st.tasks, st.feeds, st.outputs, st.moves, st.items, st.ref,
		infrapdf.NewMarotoTaskReportGenerator(cfg.App.Name),
	)
	referenceUC := reference.NewUseCase(st.ref)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Tenebrio Farm API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": cfg.DB.Driver})
	})

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:          stockUC,
		RecordProduction: recordUC,
		ProductionQuery:  queryUC,
		ReferenceUC:      referenceUC,
		MetricsHandler:   prom.Handler(),
		JWTSecret:        cfg.JWT.Secret,
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
