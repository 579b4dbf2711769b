package timeseries

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
)

const (
	DefaultYears  = 3
	DefaultWindow = 3
	MaxYears      = 10

	baseUnits     = 1000.0
	monthlyGrowth = 1.02
)

// Synthesizer generates plausible monthly sales history.
type Synthesizer struct {
	rng *random.Source
	now func() time.Time
}

func NewSynthesizer(rng *random.Source) *Synthesizer {
	if rng == nil {
		rng = random.New()
	}
	return &Synthesizer{rng: rng, now: time.Now}
}

// WithClock overrides the clock used to pick the latest synthesized year.
func (s *Synthesizer) WithClock(now func() time.Time) *Synthesizer {
	s.now = now
	return s
}

// LatestYear is the last complete calendar year.
func (s *Synthesizer) LatestYear() int {
	return s.now().Year() - 1
}

// SynthesizeHistory returns 12×years points ending with December of LatestYear.
// The trend starts at 1000 × multiplier and grows 2% a month; each month gets
// the seasonal factor and ±10% noise.
func (s *Synthesizer) SynthesizeHistory(medicine string, years int) ([]domain.HistoricalPoint, error) {
	if strings.TrimSpace(medicine) == "" {
		return nil, domain.InvalidSelection("medicine", "is required")
	}
	if years <= 0 || years > MaxYears {
		return nil, domain.InvalidSelection("years", "must be between 1 and %d, got %d", MaxYears, years)
	}

	pattern := catalog.SeasonalPattern(medicine)
	trend := baseUnits * catalog.BaseMultiplier(medicine)
	first := s.LatestYear() - years + 1

	points := make([]domain.HistoricalPoint, 0, 12*years)
	for year := first; year < first+years; year++ {
		for m := domain.Month(0); m < 12; m++ {
			expected := trend * pattern[m]
			noise := s.rng.Uniform(0.9, 1.1)
			units := int(math.Round(expected * noise))
			revenue := int(math.Round(float64(units) * s.rng.Uniform(150, 200)))

			points = append(points, domain.HistoricalPoint{
				Period:     fmt.Sprintf("%s %d", m.Short(), year),
				Month:      m.Short(),
				MonthIndex: int(m),
				Year:       year,
				Units:      units,
				Revenue:    revenue,
				Trend:      int(math.Round(trend)),
				Seasonal:   int(math.Round(expected)),
				Residual:   int(math.Round(float64(units) - expected)),
			})
			trend *= monthlyGrowth
		}
	}
	return points, nil
}

// MovingAverage attaches the rounded trailing mean of window points. The first
// window-1 points have no average.
func MovingAverage(series []domain.HistoricalPoint, window int) ([]domain.MovingAveragePoint, error) {
	if window <= 0 {
		return nil, domain.InvalidSelection("window", "must be positive, got %d", window)
	}

	out := make([]domain.MovingAveragePoint, len(series))
	sum := 0
	for i, p := range series {
		sum += p.Units
		if i >= window {
			sum -= series[i-window].Units
		}
		out[i] = domain.MovingAveragePoint{Period: p.Period, Units: p.Units}
		if i >= window-1 {
			avg := int(math.Round(float64(sum) / float64(window)))
			out[i].MovingAvg = &avg
		}
	}
	return out, nil
}

// GrowthPct is round((to-from)/from × 100), or 0 when from is 0.
func GrowthPct(from, to int) int {
	if from == 0 {
		return 0
	}
	return int(math.Round(float64(to-from) / float64(from) * 100))
}

// YearOverYear pairs each month of year1 with the same month of year2.
// Months missing from year2 report zero units and zero growth.
func YearOverYear(series []domain.HistoricalPoint, year1, year2 int) []domain.YearComparison {
	second := make(map[int]domain.HistoricalPoint, 12)
	for _, p := range series {
		if p.Year == year2 {
			second[p.MonthIndex] = p
		}
	}

	var out []domain.YearComparison
	for _, p := range series {
		if p.Year != year1 {
			continue
		}
		c := domain.YearComparison{
			Month:        p.Month,
			Year1Units:   p.Units,
			Year1Revenue: p.Revenue,
		}
		if q, ok := second[p.MonthIndex]; ok {
			c.Year2Units = q.Units
			c.Year2Revenue = q.Revenue
			c.GrowthPct = GrowthPct(p.Units, q.Units)
		}
		out = append(out, c)
	}
	return out
}

// Summarize reports the last 12 months against the 12 before them.
func Summarize(series []domain.HistoricalPoint, anomalies []domain.AnomalyPoint) domain.HistorySummary {
	recent := tail(series, 0, 12)
	previous := tail(series, 12, 12)

	var sum domain.HistorySummary
	sum.TotalUnits = totalUnits(recent)
	sum.AvgUnits = int(math.Round(float64(sum.TotalUnits) / 12))
	if prev := totalUnits(previous); prev > 0 {
		growth := float64(sum.TotalUnits-prev) / float64(prev) * 100
		sum.YoYGrowthPct = math.Round(growth*10) / 10
	}
	for _, a := range anomalies {
		if a.IsAnomaly {
			sum.AnomalyCount++
		}
	}
	return sum
}

// tail returns up to n points ending skip points before the end of series.
func tail(series []domain.HistoricalPoint, skip, n int) []domain.HistoricalPoint {
	end := len(series) - skip
	if end <= 0 {
		return nil
	}
	return series[max(0, end-n):end]
}

func totalUnits(points []domain.HistoricalPoint) int {
	total := 0
	for _, p := range points {
		total += p.Units
	}
	return total
}
