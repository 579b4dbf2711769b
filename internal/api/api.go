// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/api/handlers"
	"github.com/andresuchdata/medicast/backend-go/internal/api/middleware"
	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/recorder"
	"github.com/andresuchdata/medicast/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Catalog          *catalog.Catalog
	ForecastService  *service.ForecastService
	RiskService      *service.RiskService
	AnalyticsService *service.AnalyticsService
	// RecorderStats is reported by /health when set.
	RecorderStats func() recorder.Stats
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(cors.New(corsConfig(allowedOrigins)))
	router.Use(middleware.Owner())

	apiGroup := router.Group("/api/v1")

	apiGroup.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if services != nil && services.RecorderStats != nil {
			body["recorder"] = services.RecorderStats()
		}
		c.JSON(http.StatusOK, body)
	})

	if services == nil {
		return router
	}

	if services.Catalog != nil {
		catalogHandler := handlers.NewCatalogHandler(services.Catalog)
		catalogGroup := apiGroup.Group("/catalog")
		{
			catalogGroup.GET("/medicines", catalogHandler.ListMedicines)
			catalogGroup.GET("/categories", catalogHandler.ListCategories)
			catalogGroup.GET("/profile", catalogHandler.GetProfile)
		}
	}

	if services.ForecastService != nil {
		forecastHandler := handlers.NewForecastHandler(services.ForecastService)
		forecastGroup := apiGroup.Group("/forecast")
		{
			forecastGroup.GET("/weather", forecastHandler.GetWeatherForecast)
			forecastGroup.GET("/weather/compare", forecastHandler.CompareWeather)
			forecastGroup.GET("/month", forecastHandler.GetMonthForecast)
			forecastGroup.GET("/yearly", forecastHandler.GetYearlyProfile)
			forecastGroup.GET("/range", forecastHandler.GetRangeForecast)
		}
		apiGroup.GET("/forecasts", forecastHandler.ListForecasts)
	}

	if services.RiskService != nil {
		riskHandler := handlers.NewRiskHandler(services.RiskService)
		apiGroup.GET("/risk", riskHandler.GetRiskReport)
		apiGroup.GET("/stock", riskHandler.GetStock)
		apiGroup.POST("/stock/clear", riskHandler.ClearStock)
	}

	if services.AnalyticsService != nil {
		analyticsHandler := handlers.NewAnalyticsHandler(services.AnalyticsService)
		apiGroup.GET("/analytics/history", analyticsHandler.GetHistory)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	cfg := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.OwnerHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			cfg.AllowOrigins = nil
			cfg.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			cfg.AllowOrigins = normalizedOrigins
		}
	}
	return cfg
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
