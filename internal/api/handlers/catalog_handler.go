package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

func (h *CatalogHandler) ListMedicines(c *gin.Context) {
	entries := h.catalog.Search(c.Query("q"), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{
		"medicines": entries,
		"total":     len(entries),
	})
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

func (h *CatalogHandler) GetProfile(c *gin.Context) {
	name := strings.TrimSpace(c.Query("medicine"))
	if name == "" {
		respondError(c, domain.InvalidSelection("medicine", "is required"), "failed to load profile")
		return
	}

	entry, listed := h.catalog.Entry(name)
	c.JSON(http.StatusOK, gin.H{
		"profile": entry,
		"listed":  listed,
	})
}
