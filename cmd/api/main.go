package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanlanch/commercedash/config"
	"github.com/jordanlanch/commercedash/pkg/analytics"
	"github.com/jordanlanch/commercedash/pkg/api/handlers"
	"github.com/jordanlanch/commercedash/pkg/cache"
	"github.com/jordanlanch/commercedash/pkg/dataset"
	"github.com/jordanlanch/commercedash/pkg/export"
	"github.com/jordanlanch/commercedash/pkg/logger"
	"github.com/jordanlanch/commercedash/pkg/metrics"
	custommiddleware "github.com/jordanlanch/commercedash/pkg/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("configuration loaded", "environment", cfg.APIEnvironment, "data_path", cfg.DataPath)

	// Sentry is optional; without a DSN errors only go to the log
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("failed to initialize sentry", "error", err)
		} else {
			log.Info("sentry initialized", "environment", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Load the dataset once; it is immutable for the process lifetime
	loader := dataset.NewLoader(cfg.DataPath, log)
	began := time.Now()
	tables, err := loader.Load(context.Background())
	if err != nil {
		log.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	loadDuration := time.Since(began)
	log.Info("dataset loaded",
		"orders", len(tables.Orders),
		"order_items", len(tables.OrderItems),
		"products", len(tables.Products),
		"customers", len(tables.Customers),
		"reviews", len(tables.Reviews),
		"duration", loadDuration.String(),
	)

	prometheusMetrics := metrics.New()
	prometheusMetrics.RecordDatasetLoaded(map[string]int{
		"orders":      len(tables.Orders),
		"order_items": len(tables.OrderItems),
		"products":    len(tables.Products),
		"customers":   len(tables.Customers),
		"reviews":     len(tables.Reviews),
	}, loadDuration)

	// Redis is optional: when disabled or unreachable every dashboard
	// request recomputes from the in-memory tables
	var store *cache.Store
	if cfg.CacheEnabled {
		redisClient, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, running without cache", "error", err)
		} else {
			defer redisClient.Close()
			store = cache.NewStore(redisClient, time.Duration(cfg.CacheTTLSecs)*time.Second, log)
			log.Info("redis connected", "ttl_seconds", cfg.CacheTTLSecs)
		}
	}

	analyticsService := analytics.NewService(tables, log)
	exportService, err := export.NewService(cfg.ExportDir, log)
	if err != nil {
		log.Error("failed to initialize export service", "error", err)
		os.Exit(1)
	}

	dashboardHandler := handlers.NewDashboardHandler(analyticsService, store, prometheusMetrics)
	datasetHandler := handlers.NewDatasetHandler(tables)
	exportHandler := handlers.NewExportHandler(exportService, analyticsService, prometheusMetrics)

	e := echo.New()
	e.HideBanner = true

	rateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info("request",
				"method", c.Request().Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}

	e.Use(prometheusMetrics.Middleware())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "Accept"},
	}))
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.Secure())
	e.Use(rateLimiter.RateLimitMiddleware())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "CommerceDash API",
			"version":     "0.1.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})
	e.GET("/health", datasetHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/overview", dashboardHandler.Overview)
	dashboard.GET("/kpis", dashboardHandler.KPIs)
	dashboard.GET("/trend", dashboardHandler.Trend)
	dashboard.GET("/categories", dashboardHandler.Categories)
	dashboard.GET("/states", dashboardHandler.States)
	dashboard.GET("/satisfaction", dashboardHandler.Satisfaction)
	dashboard.GET("/summary-cards", dashboardHandler.SummaryCards)

	ds := v1.Group("/dataset")
	ds.GET("/summary", datasetHandler.Summary)
	ds.GET("/range", datasetHandler.Range)

	v1.POST("/exports", exportHandler.Create)

	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Info("server starting",
		"address", address,
		"rate_limit_per_minute", cfg.RateLimitRequestsPerMinute,
		"rate_limit_burst", cfg.RateLimitBurst,
	)

	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
