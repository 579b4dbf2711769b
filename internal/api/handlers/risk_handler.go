package handlers

import (
	"net/http"

	"github.com/andresuchdata/medicast/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type RiskHandler struct {
	service *service.RiskService
}

func NewRiskHandler(service *service.RiskService) *RiskHandler {
	return &RiskHandler{service: service}
}

func (h *RiskHandler) GetRiskReport(c *gin.Context) {
	horizon, err := intParam(c, "horizon_days")
	if err != nil {
		respondError(c, err, "failed to assess risk")
		return
	}

	report, err := h.service.Report(c.Request.Context(), horizon, listParam(c, "medicine"))
	if err != nil {
		respondError(c, err, "failed to assess risk")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *RiskHandler) GetStock(c *gin.Context) {
	records := h.service.StockLevels(listParam(c, "medicine"))
	c.JSON(http.StatusOK, gin.H{
		"stock": records,
		"total": len(records),
	})
}

func (h *RiskHandler) ClearStock(c *gin.Context) {
	if err := h.service.ClearStock(c.Request.Context()); err != nil {
		respondError(c, err, "failed to clear stock cache")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
