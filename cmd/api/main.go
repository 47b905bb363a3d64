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

	"github.com/thecactoos/enterprise-sub001/internal/app"
	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/catalog"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/ksef"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/metrics"
	infrapdf "github.com/thecactoos/enterprise-sub001/internal/infrastructure/pdf"
	httpRouter "github.com/thecactoos/enterprise-sub001/internal/interfaces/http"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
	"github.com/thecactoos/enterprise-sub001/pkg/logger"
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
		Str("storage", cfg.App.Storage).
		Str("sequence", cfg.Sequence.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.Close()

	var (
		recorder billing.Recorder = billing.NopRecorder{}
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewRecorder(cfg.Metrics.Namespace, reg)
		gatherer = reg
	}

	numberingUC := billing.NewNumberingUseCase(st.Documents, st.Sequences, cfg.Sequence.MaxAttempts, recorder, log)
	documentUC := billing.NewDocumentUseCase(st.Tx, st.Documents, st.Services, numberingUC, recorder, log)
	pricingUC := billing.NewPricingUseCase(numberingUC, recorder)
	pdfUC := billing.NewPDFUseCase(st.Documents, infrapdf.NewMarotoPDFGenerator(cfg.Seller))
	exportUC := billing.NewExportUseCase(st.Documents, ksef.NewExporter(cfg.Seller, cfg.App.Name))
	catalogUC := catalog.NewUseCase(st.Tx, st.Services, st.History, log)

	server := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	server.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		server.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Pricing & VAT API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no disponible")
	}

	httpRouter.Router(server, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Pricing:   pricingUC,
		Documents: documentUC,
		PDF:       pdfUC,
		Export:    exportUC,
		Catalog:   catalogUC,
		Metrics:   gatherer,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
