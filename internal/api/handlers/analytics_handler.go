package handlers

import (
	"net/http"

	"github.com/andresuchdata/medicast/backend-go/internal/service"
	"github.com/andresuchdata/medicast/backend-go/internal/timeseries"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetHistory(c *gin.Context) {
	var opts timeseries.Options
	for name, dst := range map[string]*int{
		"years":  &opts.Years,
		"window": &opts.Window,
		"year1":  &opts.Year1,
		"year2":  &opts.Year2,
	} {
		v, err := intParam(c, name)
		if err != nil {
			respondError(c, err, "failed to analyse history")
			return
		}
		*dst = v
	}

	analytics, err := h.service.History(c.Query("medicine"), opts)
	if err != nil {
		respondError(c, err, "failed to analyse history")
		return
	}

	c.JSON(http.StatusOK, analytics)
}
