package service

import (
	"context"
	"strings"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/forecast"
	"github.com/andresuchdata/medicast/backend-go/internal/repository"
)

const (
	periodCurrentWeather = "Current Weather"
	periodTwelveMonths   = "12 Months"
	rangeWeatherLabel    = "Future-12M-Range"
	rangeMonthLabel      = "Next 12 Months"
)

// RecordSink accepts forecast records for asynchronous persistence.
type RecordSink interface {
	Submit(rec domain.ForecastRecord) bool
}

type ForecastService struct {
	estimator *forecast.Estimator
	ranger    *forecast.RangeForecaster
	repo      repository.ForecastRepository
	sink      RecordSink
	now       func() time.Time
}

func NewForecastService(estimator *forecast.Estimator, repo repository.ForecastRepository, sink RecordSink) *ForecastService {
	return &ForecastService{
		estimator: estimator,
		ranger:    forecast.NewRangeForecaster(estimator),
		repo:      repo,
		sink:      sink,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for the default month.
func (s *ForecastService) WithClock(now func() time.Time) *ForecastService {
	s.now = now
	return s
}

func (s *ForecastService) monthOrNow(month *domain.Month) domain.Month {
	if month != nil {
		return *month
	}
	return domain.MonthOf(s.now())
}

// record is fire-and-forget; anonymous callers are never recorded.
func (s *ForecastService) record(rec domain.ForecastRecord) {
	if rec.OwnerID == "" || s.sink == nil {
		return
	}
	s.sink.Submit(rec)
}

// EstimateWeather estimates demand under weather for month, defaulting to the
// current month.
func (s *ForecastService) EstimateWeather(ctx context.Context, owner, medicine string, weather domain.Weather, month *domain.Month) (domain.Estimate, error) {
	if weather == "" {
		return domain.Estimate{}, domain.InvalidSelection("weather", "is required")
	}

	est, err := s.estimator.Estimate(forecast.Selection{
		Medicine: medicine,
		Month:    s.monthOrNow(month),
		Weather:  weather,
	})
	if err != nil {
		return domain.Estimate{}, err
	}

	period := periodCurrentWeather
	s.record(domain.ForecastRecord{
		OwnerID:          owner,
		Medicine:         est.Medicine,
		Weather:          string(est.Weather),
		ForecastUnits:    est.Units,
		Revenue:          est.Revenue,
		PredictionPeriod: &period,
	})
	return est, nil
}

// EstimateMonth estimates season-only demand for month.
func (s *ForecastService) EstimateMonth(ctx context.Context, owner, medicine string, month domain.Month) (domain.Estimate, error) {
	est, err := s.estimator.Estimate(forecast.Selection{Medicine: medicine, Month: month})
	if err != nil {
		return domain.Estimate{}, err
	}

	monthName := est.Month
	s.record(domain.ForecastRecord{
		OwnerID:       owner,
		Medicine:      est.Medicine,
		Weather:       string(est.Season),
		Month:         &monthName,
		ForecastUnits: est.Units,
		Revenue:       est.Revenue,
	})
	return est, nil
}

func (s *ForecastService) CompareWeather(medicine string, month *domain.Month) ([]domain.Estimate, error) {
	return s.estimator.CompareWeather(medicine, s.monthOrNow(month))
}

func (s *ForecastService) YearlyProfile(medicine string) ([]domain.Estimate, error) {
	return s.estimator.YearlyProfile(medicine)
}

// Forecast12Months projects the next 12 months from start (default: now) and
// records the average totals.
func (s *ForecastService) Forecast12Months(ctx context.Context, owner, medicine string, start *domain.Month) (domain.RangeForecast, error) {
	rf, err := s.ranger.Forecast12Months(medicine, s.monthOrNow(start))
	if err != nil {
		return domain.RangeForecast{}, err
	}

	month, period := rangeMonthLabel, periodTwelveMonths
	s.record(domain.ForecastRecord{
		OwnerID:          owner,
		Medicine:         rf.Medicine,
		Weather:          rangeWeatherLabel,
		Month:            &month,
		ForecastUnits:    rf.Totals.AvgCaseUnits,
		Revenue:          rf.Totals.AvgCaseRevenue,
		PredictionPeriod: &period,
	})
	return rf, nil
}

// ListForecasts returns the owner's stored forecasts, newest first.
func (s *ForecastService) ListForecasts(ctx context.Context, owner string) ([]domain.ForecastRecord, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, domain.InvalidSelection("owner", "is required")
	}
	records, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = make([]domain.ForecastRecord, 0)
	}
	return records, nil
}
