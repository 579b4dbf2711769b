package forecast

import (
	"math"
	"strings"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
)

// Horizon is the number of months in a range projection.
const Horizon = 12

// RangeForecaster projects best/worst/average demand across every weather scenario.
type RangeForecaster struct {
	estimator *Estimator
}

func NewRangeForecaster(estimator *Estimator) *RangeForecaster {
	return &RangeForecaster{estimator: estimator}
}

func weatherBounds(medicine string) (best, worst float64) {
	best, worst = math.Inf(-1), math.Inf(1)
	for _, w := range domain.Weathers {
		f := catalog.WeatherFactor(w, medicine)
		best = math.Max(best, f)
		worst = math.Min(worst, f)
	}
	return best, worst
}

// Forecast12Months returns Horizon points starting at start and wrapping through
// December. Totals are the sums of the per-point values.
func (f *RangeForecaster) Forecast12Months(medicine string, start domain.Month) (domain.RangeForecast, error) {
	if strings.TrimSpace(medicine) == "" {
		return domain.RangeForecast{}, domain.InvalidSelection("medicine", "is required")
	}
	if !start.Valid() {
		return domain.RangeForecast{}, domain.InvalidSelection("start_month", "must be between 0 and 11, got %d", int(start))
	}

	bestFactor, worstFactor := weatherBounds(medicine)

	result := domain.RangeForecast{
		Medicine: medicine,
		Points:   make([]domain.ForecastPoint, 0, Horizon),
	}

	for i := 0; i < Horizon; i++ {
		month := start.Add(i)
		best := Units(medicine, month, bestFactor)
		worst := Units(medicine, month, worstFactor)
		avg := int(math.Round(float64(best+worst) / 2))
		price := f.estimator.UnitPrice()

		p := domain.ForecastPoint{
			Period:           month.Short(),
			FullMonth:        month.Name(),
			Season:           month.Season(),
			BestCaseUnits:    best,
			WorstCaseUnits:   worst,
			AvgCaseUnits:     avg,
			Range:            best - worst,
			BestCaseRevenue:  Revenue(best, price),
			WorstCaseRevenue: Revenue(worst, price),
			AvgCaseRevenue:   Revenue(avg, price),
			UnitPrice:        price,
		}
		result.Points = append(result.Points, p)

		result.Totals.BestCaseUnits += p.BestCaseUnits
		result.Totals.WorstCaseUnits += p.WorstCaseUnits
		result.Totals.AvgCaseUnits += p.AvgCaseUnits
		result.Totals.BestCaseRevenue += p.BestCaseRevenue
		result.Totals.WorstCaseRevenue += p.WorstCaseRevenue
		result.Totals.AvgCaseRevenue += p.AvgCaseRevenue
	}

	return result, nil
}
