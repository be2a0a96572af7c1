package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/avolkov/bills-api/internal/application/billing"
	"github.com/avolkov/bills-api/internal/application/importer"
	infrapdf "github.com/avolkov/bills-api/internal/infrastructure/pdf"
	"github.com/avolkov/bills-api/internal/infrastructure/snapshot"
	httpRouter "github.com/avolkov/bills-api/internal/interfaces/http"
	"github.com/avolkov/bills-api/pkg/config"
	"github.com/avolkov/bills-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	aggregateStore := snapshot.NewAggregateStore(cfg.Storage.DataDir)
	preferencesStore := snapshot.NewPreferencesStore(cfg.Storage.PrefPath)

	importUC := importer.NewUseCase(aggregateStore, log)
	calculator := billing.NewCalculator()
	encoder := billing.NewPayloadEncoder()
	tracker := billing.NewPrintStateTracker(aggregateStore)

	renderer, err := infrapdf.NewReceiptRenderer(cfg.Render.FontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("receipt renderer")
	}
	artifacts := infrapdf.NewFileArtifactStore()

	documentUC := billing.NewDocumentUseCase(
		aggregateStore, preferencesStore,
		calculator, encoder,
		renderer, renderer, artifacts, tracker,
		billing.DocumentConfig{
			OutputDir: cfg.Storage.OutputDir,
			Workers:   cfg.Render.Workers,
			Timeout:   cfg.Render.Timeout(),
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ImportUC:    importUC,
		DocumentUC:  documentUC,
		Calculator:  calculator,
		Aggregates:  aggregateStore,
		Preferences: preferencesStore,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
