package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/api/middleware"
	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/forecast"
	"github.com/andresuchdata/medicast/backend-go/internal/recorder"
	"github.com/andresuchdata/medicast/backend-go/internal/repository"
	"github.com/andresuchdata/medicast/backend-go/internal/repository/memory"
	"github.com/andresuchdata/medicast/backend-go/internal/service"
	"github.com/andresuchdata/medicast/backend-go/internal/stock"
	"github.com/andresuchdata/medicast/backend-go/internal/timeseries"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const crocin = "Crocin (Paracetamol)"

// syncSink writes records immediately so tests can read them back.
type syncSink struct {
	repo repository.ForecastRepository
}

func (s syncSink) Submit(rec domain.ForecastRecord) bool {
	_, err := s.repo.Insert(context.Background(), rec)
	return err == nil
}

func january() time.Time {
	return time.Date(2026, time.January, 20, 10, 0, 0, 0, time.UTC)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := memory.NewForecastRepository()
	est := forecast.NewEstimator(domain.PriceFixed, nil)
	model := stock.NewModel(stock.NewMemoryCache(), random.NewSeeded(4, 2))
	synth := timeseries.NewSynthesizer(random.NewSeeded(3, 3)).WithClock(january)

	services := &Services{
		Catalog:          catalog.Default(),
		ForecastService:  service.NewForecastService(est, repo, syncSink{repo: repo}).WithClock(january),
		RiskService:      service.NewRiskService(catalog.Default(), model, nil, 30).WithClock(january),
		AnalyticsService: service.NewAnalyticsService(synth, 3),
		RecorderStats:    func() recorder.Stats { return recorder.Stats{Written: 7} },
	}
	return NewRouter(services, []string{"*"})
}

func do(t *testing.T, router *gin.Engine, method, path string, query url.Values, owner string) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	if owner != "" {
		req.Header.Set(middleware.OwnerHeader, owner)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(), http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"written":7`)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestWeatherForecastEndpoint(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodGet, "/api/v1/forecast/weather",
		url.Values{"medicine": {crocin}, "weather": {"Rainy"}, "month": {"January"}}, "u1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var est domain.Estimate
	decode(t, w, &est)
	assert.Equal(t, 627, est.Units)
	assert.Equal(t, 31350.0, est.Revenue)

	w = do(t, router, http.MethodGet, "/api/v1/forecasts", nil, "u1")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Forecasts []domain.ForecastRecord `json:"forecasts"`
		Total     int                     `json:"total"`
	}
	decode(t, w, &body)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "Rainy", body.Forecasts[0].Weather)
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	router := newTestRouter()

	testCases := []struct {
		name  string
		path  string
		query url.Values
	}{
		{"unknown weather", "/api/v1/forecast/weather", url.Values{"medicine": {crocin}, "weather": {"Snowy"}}},
		{"missing weather", "/api/v1/forecast/weather", url.Values{"medicine": {crocin}}},
		{"missing month", "/api/v1/forecast/month", url.Values{"medicine": {crocin}}},
		{"bad month", "/api/v1/forecast/month", url.Values{"medicine": {crocin}, "month": {"13"}}},
		{"missing medicine", "/api/v1/forecast/range", nil},
		{"bad horizon", "/api/v1/risk", url.Values{"horizon_days": {"-3"}}},
		{"non numeric horizon", "/api/v1/risk", url.Values{"horizon_days": {"soon"}}},
		{"bad window", "/api/v1/analytics/history", url.Values{"medicine": {crocin}, "window": {"-1"}}},
		{"too many years", "/api/v1/analytics/history", url.Values{"medicine": {crocin}, "years": {"1152921504606846976"}}},
		{"missing profile", "/api/v1/catalog/profile", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, router, http.MethodGet, tc.path, tc.query, "u1")
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestListForecastsWithoutOwner(t *testing.T) {
	w := do(t, newTestRouter(), http.MethodGet, "/api/v1/forecasts", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonthForecastEndpoint(t *testing.T) {
	w := do(t, newTestRouter(), http.MethodGet, "/api/v1/forecast/month",
		url.Values{"medicine": {crocin}, "month": {"1"}}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var est domain.Estimate
	decode(t, w, &est)
	assert.Equal(t, 490, est.Units)
	assert.Equal(t, domain.SeasonWinter, est.Season)
}

func TestRangeForecastEndpoint(t *testing.T) {
	w := do(t, newTestRouter(), http.MethodGet, "/api/v1/forecast/range",
		url.Values{"medicine": {crocin}, "start_month": {"Oct"}}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var rf domain.RangeForecast
	decode(t, w, &rf)
	require.Len(t, rf.Points, 12)
	assert.Equal(t, "Oct", rf.Points[0].Period)
}

func TestCompareAndYearlyEndpoints(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodGet, "/api/v1/forecast/weather/compare", url.Values{"medicine": {crocin}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var cmp struct {
		Estimates []domain.Estimate `json:"estimates"`
	}
	decode(t, w, &cmp)
	assert.Len(t, cmp.Estimates, 3)

	w = do(t, router, http.MethodGet, "/api/v1/forecast/yearly", url.Values{"medicine": {crocin}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &cmp)
	assert.Len(t, cmp.Estimates, 12)
}

func TestCatalogEndpoints(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodGet, "/api/v1/catalog/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "categories")

	w = do(t, router, http.MethodGet, "/api/v1/catalog/medicines", url.Values{"q": {"Crocin"}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), crocin)

	w = do(t, router, http.MethodGet, "/api/v1/catalog/profile", url.Values{"medicine": {"Unknown Tonic"}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"listed":false`)
	assert.Contains(t, w.Body.String(), `"category":"Other"`)
}

func TestRiskAndStockEndpoints(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodGet, "/api/v1/risk",
		url.Values{"horizon_days": {"14"}, "medicine": {crocin + ",Metformin"}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var report domain.RiskReport
	decode(t, w, &report)
	assert.Equal(t, 14, report.HorizonDays)
	assert.Len(t, report.Assessments, 2)

	w = do(t, router, http.MethodGet, "/api/v1/stock", url.Values{"medicine": {crocin}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = do(t, router, http.MethodPost, "/api/v1/stock/clear", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	w := do(t, newTestRouter(), http.MethodGet, "/api/v1/analytics/history",
		url.Values{"medicine": {crocin}, "years": {"2"}}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var a domain.HistoryAnalytics
	decode(t, w, &a)
	assert.Len(t, a.History, 24)
	assert.Equal(t, 2025, a.Year2)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	assert.False(t, all)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)

	_, all = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, all)
}
