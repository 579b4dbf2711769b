package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/api"
	"github.com/andresuchdata/medicast/backend-go/internal/cache"
	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/config"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/forecast"
	"github.com/andresuchdata/medicast/backend-go/internal/recorder"
	"github.com/andresuchdata/medicast/backend-go/internal/repository"
	"github.com/andresuchdata/medicast/backend-go/internal/repository/memory"
	"github.com/andresuchdata/medicast/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/medicast/backend-go/internal/service"
	"github.com/andresuchdata/medicast/backend-go/internal/stock"
	"github.com/andresuchdata/medicast/backend-go/internal/timeseries"
	"github.com/andresuchdata/medicast/backend-go/pkg/logger"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Configure(os.Stdout, cfg.Server.Mode == "debug")
	logger.SetLevel(cfg.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize storage
	repo, closeRepo := openRepository(cfg.Database)
	defer closeRepo()

	redisClient := openRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var stockCache stock.Cache = stock.NewMemoryCache()
	if strings.EqualFold(cfg.Stock.Backend, "redis") && redisClient != nil {
		stockCache = cache.NewRedisStockStore(redisClient, cfg.Stock.SessionID)
	}

	// Initialize services
	rng := random.New()
	cat := catalog.Default()
	model := stock.NewModel(stockCache, rng)
	estimator := forecast.NewEstimator(domain.ParsePriceMode(cfg.Forecast.PriceMode), rng)

	rec := recorder.New(repo, recorder.NotifierFunc(func(r domain.ForecastRecord, err error) {
		logger.Log.Warn().Err(err).Str("owner", r.OwnerID).Str("medicine", r.Medicine).Msg("forecast not recorded")
	}), recorder.Config{
		QueueSize:    cfg.Forecast.RecorderQueueSize,
		Workers:      cfg.Forecast.RecorderWorkers,
		WriteTimeout: cfg.Forecast.RecorderTimeout(),
	})

	services := &api.Services{
		Catalog:          cat,
		ForecastService:  service.NewForecastService(estimator, repo, rec),
		RiskService:      service.NewRiskService(cat, model, cache.NewRiskCache(redisClient, cfg.Cache), cfg.Forecast.RiskHorizonDays),
		AnalyticsService: service.NewAnalyticsService(timeseries.NewSynthesizer(rng), cfg.Forecast.HistoryYears),
		RecorderStats:    rec.Stats,
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("price_mode", string(estimator.Mode())).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := rec.Close(ctx); err != nil {
		logger.Log.Warn().Err(err).Interface("stats", rec.Stats()).Msg("recorder did not drain")
	}

	logger.Log.Info().Interface("recorder", rec.Stats()).Msg("Server exiting")
}

func openRepository(cfg config.DatabaseConfig) (repository.ForecastRepository, func()) {
	if !cfg.Enabled {
		logger.Log.Info().Msg("database disabled, keeping forecasts in memory")
		return memory.NewForecastRepository(), func() {}
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to prepare database schema")
	}

	return postgres.NewForecastRepository(db), func() { db.Close() }
}

func openRedis(cfg *config.Config) *redis.Client {
	if !cfg.Cache.Enabled && !strings.EqualFold(cfg.Stock.Backend, "redis") {
		return nil
	}

	client, err := cache.NewRedisClient(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("redis unavailable, caching disabled")
		return nil
	}
	return client
}
