package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"github.com/zahabco/gold-dashboard/api"
	"github.com/zahabco/gold-dashboard/app"
	"github.com/zahabco/gold-dashboard/config"
	"github.com/zahabco/gold-dashboard/handlers"
	"github.com/zahabco/gold-dashboard/jobs"
	"github.com/zahabco/gold-dashboard/shared"
	"github.com/zahabco/gold-dashboard/views"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	log := logrus.StandardLogger()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// API client and typed endpoint services
	client := api.NewClient(api.ClientConfig{
		BaseURL:        cfg.APIBaseURL,
		PathPrefix:     cfg.APIPathPrefix,
		Timeout:        cfg.RequestTimeout,
		RetryAttempts:  cfg.RetryAttempts,
		RetryBaseDelay: cfg.RetryBaseDelay,
		PollMinSpacing: cfg.PollMinSpacing,
	}, log)

	goldService := api.NewGoldService(client)
	currencyService := api.NewCurrencyService(client)
	settingsService := api.NewSettingsService(client)

	// View controller
	metrics := shared.NewFetchMetrics()
	renderer := views.NewRenderer()
	application := app.New(goldService, currencyService, settingsService, renderer, metrics, cfg.SuccessBannerTTL, log)

	// Initial load: a failure leaves the app non-functional but the server
	// keeps serving the error banner page.
	initCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := application.Init(initCtx); err != nil {
		log.WithError(err).Error("Initial load failed, serving error banner only")
	}
	cancel()

	// Timers: independent clock and data refresh jobs
	clockJob := jobs.NewClockJob(application, cfg.ClockInterval)
	refreshJob := jobs.NewRefreshJob(application, cfg.RefreshInterval)
	clockJob.Start()
	refreshJob.Start()
	defer func() {
		refreshJob.Stop()
		clockJob.Stop()
		application.Teardown()
	}()

	// Setup Fiber
	server := fiber.New()

	// Middleware
	server.Use(logger.New())
	server.Use(cors.New())

	// Health check endpoint
	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"state":     application.State().String(),
			"timestamp": time.Now().Unix(),
		})
	})

	// Routes
	dashboardHandler := handlers.NewDashboardHandler(application)
	server.Get("/", dashboardHandler.GetDashboard)
	server.Get("/fragments/gold", dashboardHandler.GetGoldFragment)
	server.Get("/fragments/currency", dashboardHandler.GetCurrencyFragment)
	server.Get("/fragments/market", dashboardHandler.GetMarketFragment)
	server.Get("/status", dashboardHandler.GetStatus)
	server.Get("/metrics", dashboardHandler.GetMetrics)

	// Start server
	log.Infof("Server starting on port %s", cfg.ServerPort)
	if err := server.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
