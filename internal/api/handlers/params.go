package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps validation failures to 400 and everything else to 500.
func respondError(c *gin.Context, err error, message string) {
	if errors.Is(err, domain.ErrInvalidSelection) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
}

// monthParam accepts a month name, a three-letter abbreviation or 1..12.
// A missing parameter yields nil.
func monthParam(c *gin.Context, name string) (*domain.Month, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		m := domain.Month(n - 1)
		if !m.Valid() {
			return nil, domain.InvalidSelection(name, "must be between 1 and 12, got %d", n)
		}
		return &m, nil
	}
	m, ok := domain.ParseMonth(raw)
	if !ok {
		return nil, domain.InvalidSelection(name, "unknown month %q", raw)
	}
	return &m, nil
}

// intParam returns 0 when the parameter is absent.
func intParam(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.InvalidSelection(name, "must be an integer, got %q", raw)
	}
	return n, nil
}

// listParam supports both ?k=a&k=b and ?k=a,b.
func listParam(c *gin.Context, name string) []string {
	var out []string
	for _, v := range c.QueryArray(name) {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
