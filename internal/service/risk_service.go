package service

import (
	"context"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/cache"
	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/risk"
	"github.com/andresuchdata/medicast/backend-go/internal/stock"
	"github.com/rs/zerolog/log"
)

type RiskService struct {
	catalog        *catalog.Catalog
	stock          *stock.Model
	scorer         *risk.Scorer
	cache          cache.RiskCache
	defaultHorizon int
	now            func() time.Time
}

// NewRiskService scores stock from model. Cached reports are keyed on the
// model's stock session, so they never outlive the draws they were built from.
func NewRiskService(cat *catalog.Catalog, model *stock.Model, cacheImpl cache.RiskCache, defaultHorizon int) *RiskService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRiskCache()
	}
	if defaultHorizon <= 0 {
		defaultHorizon = risk.DefaultHorizonDays
	}
	return &RiskService{
		catalog:        cat,
		stock:          model,
		scorer:         risk.NewScorer(model),
		cache:          cacheImpl,
		defaultHorizon: defaultHorizon,
		now:            time.Now,
	}
}

// WithClock overrides the clock used to pick the demand month.
func (s *RiskService) WithClock(now func() time.Time) *RiskService {
	s.now = now
	s.scorer.WithClock(now)
	return s
}

func (s *RiskService) medicinesOrAll(medicines []string) []string {
	if len(medicines) == 0 {
		return s.catalog.Medicines()
	}
	return medicines
}

// Report scores medicines (every catalog medicine when empty) over horizonDays.
// A zero horizon selects the configured default.
func (s *RiskService) Report(ctx context.Context, horizonDays int, medicines []string) (domain.RiskReport, error) {
	if horizonDays == 0 {
		horizonDays = s.defaultHorizon
	}
	if horizonDays < 0 {
		return domain.RiskReport{}, domain.InvalidSelection("horizon_days", "must be positive, got %d", horizonDays)
	}
	medicines = s.medicinesOrAll(medicines)

	key := cache.RiskKey{
		SessionID:   s.stock.Session(),
		HorizonDays: horizonDays,
		Month:       domain.MonthOf(s.now()),
		Medicines:   medicines,
	}

	if report, ok, err := s.cache.GetReport(ctx, key); err == nil && ok {
		return *report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("risk: cache get report failed")
	}

	report, err := s.scorer.Report(medicines, horizonDays)
	if err != nil {
		return domain.RiskReport{}, err
	}

	if err := s.cache.SetReport(ctx, key, report); err != nil {
		log.Warn().Err(err).Msg("risk: cache set report failed")
	}

	return report, nil
}

// Assess scores a single medicine.
func (s *RiskService) Assess(horizonDays int, medicine string) (domain.RiskAssessment, error) {
	if horizonDays == 0 {
		horizonDays = s.defaultHorizon
	}
	return s.scorer.AssessRisk(medicine, horizonDays)
}

// StockLevels returns the current stock record of each medicine.
func (s *RiskService) StockLevels(medicines []string) []domain.StockRecord {
	return s.stock.Records(s.medicinesOrAll(medicines))
}

// ClearStock redraws stock on next access and drops cached risk reports.
func (s *RiskService) ClearStock(ctx context.Context) error {
	s.stock.ClearCache()
	return s.cache.InvalidateAll(ctx)
}
