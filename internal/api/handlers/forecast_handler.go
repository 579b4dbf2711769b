package handlers

import (
	"net/http"

	"github.com/andresuchdata/medicast/backend-go/internal/api/middleware"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetWeatherForecast(c *gin.Context) {
	month, err := monthParam(c, "month")
	if err != nil {
		respondError(c, err, "failed to compute forecast")
		return
	}

	est, err := h.service.EstimateWeather(c.Request.Context(), middleware.OwnerID(c),
		c.Query("medicine"), domain.Weather(c.Query("weather")), month)
	if err != nil {
		respondError(c, err, "failed to compute forecast")
		return
	}

	c.JSON(http.StatusOK, est)
}

func (h *ForecastHandler) GetMonthForecast(c *gin.Context) {
	month, err := monthParam(c, "month")
	if err != nil {
		respondError(c, err, "failed to compute forecast")
		return
	}
	if month == nil {
		respondError(c, domain.InvalidSelection("month", "is required"), "failed to compute forecast")
		return
	}

	est, err := h.service.EstimateMonth(c.Request.Context(), middleware.OwnerID(c), c.Query("medicine"), *month)
	if err != nil {
		respondError(c, err, "failed to compute forecast")
		return
	}

	c.JSON(http.StatusOK, est)
}

func (h *ForecastHandler) CompareWeather(c *gin.Context) {
	month, err := monthParam(c, "month")
	if err != nil {
		respondError(c, err, "failed to compare weather")
		return
	}

	estimates, err := h.service.CompareWeather(c.Query("medicine"), month)
	if err != nil {
		respondError(c, err, "failed to compare weather")
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}

func (h *ForecastHandler) GetYearlyProfile(c *gin.Context) {
	estimates, err := h.service.YearlyProfile(c.Query("medicine"))
	if err != nil {
		respondError(c, err, "failed to compute yearly profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}

func (h *ForecastHandler) GetRangeForecast(c *gin.Context) {
	start, err := monthParam(c, "start_month")
	if err != nil {
		respondError(c, err, "failed to compute range forecast")
		return
	}

	rf, err := h.service.Forecast12Months(c.Request.Context(), middleware.OwnerID(c), c.Query("medicine"), start)
	if err != nil {
		respondError(c, err, "failed to compute range forecast")
		return
	}

	c.JSON(http.StatusOK, rf)
}

func (h *ForecastHandler) ListForecasts(c *gin.Context) {
	records, err := h.service.ListForecasts(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		respondError(c, err, "failed to fetch forecasts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forecasts": records,
		"total":     len(records),
	})
}
