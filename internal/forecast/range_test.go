package forecast

import (
	"testing"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixedForecaster() *RangeForecaster {
	return NewRangeForecaster(NewEstimator(domain.PriceFixed, nil))
}

func TestForecast12MonthsFirstPoint(t *testing.T) {
	rf, err := newFixedForecaster().Forecast12Months(crocin, 0)
	require.NoError(t, err)
	require.Len(t, rf.Points, Horizon)

	p := rf.Points[0]
	assert.Equal(t, "Jan", p.Period)
	assert.Equal(t, "January", p.FullMonth)
	assert.Equal(t, 627, p.BestCaseUnits)
	assert.Equal(t, 353, p.WorstCaseUnits)
	assert.Equal(t, 490, p.AvgCaseUnits)
	assert.Equal(t, 274, p.Range)
	assert.Equal(t, 31350.0, p.BestCaseRevenue)
	assert.Equal(t, 24500.0, p.AvgCaseRevenue)
}

func TestForecast12MonthsWrapsAround(t *testing.T) {
	rf, err := newFixedForecaster().Forecast12Months(crocin, 9)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, p := range rf.Points {
		seen[p.Period] = true
	}
	assert.Len(t, seen, 12)
	assert.Equal(t, "Oct", rf.Points[0].Period)
	assert.Equal(t, "Dec", rf.Points[2].Period)
	assert.Equal(t, "Jan", rf.Points[3].Period)
	assert.Equal(t, "Sep", rf.Points[11].Period)
}

func TestForecast12MonthsTotals(t *testing.T) {
	rf, err := newFixedForecaster().Forecast12Months("Metformin", 4)
	require.NoError(t, err)

	assert.Equal(t, 2700, rf.Totals.BestCaseUnits)
	assert.Equal(t, 2700, rf.Totals.WorstCaseUnits)
	assert.Equal(t, 2700, rf.Totals.AvgCaseUnits)
	assert.Equal(t, 135000.0, rf.Totals.AvgCaseRevenue)
	for _, p := range rf.Points {
		assert.Zero(t, p.Range)
	}
}

func TestForecast12MonthsRandomizedTotals(t *testing.T) {
	f := NewRangeForecaster(NewEstimator(domain.PriceRandomized, random.NewSeeded(3, 5)))
	rf, err := f.Forecast12Months(crocin, 0)
	require.NoError(t, err)

	var revenue float64
	var units int
	for _, p := range rf.Points {
		assert.GreaterOrEqual(t, p.UnitPrice, domain.MinRandomPrice)
		assert.Less(t, p.UnitPrice, domain.MaxRandomPrice)
		revenue += p.AvgCaseRevenue
		units += p.AvgCaseUnits
	}
	assert.Equal(t, revenue, rf.Totals.AvgCaseRevenue)
	assert.Equal(t, units, rf.Totals.AvgCaseUnits)
}

func TestForecast12MonthsValidation(t *testing.T) {
	f := newFixedForecaster()

	_, err := f.Forecast12Months("", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	_, err = f.Forecast12Months(crocin, 12)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestRangeOrderingProperty(t *testing.T) {
	names := append(catalog.Default().Medicines(), "Unknown Tonic")

	f := newFixedForecaster()
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("best >= avg >= worst >= 0", prop.ForAll(
		func(idx, start int) bool {
			rf, err := f.Forecast12Months(names[idx], domain.Month(start))
			if err != nil || len(rf.Points) != Horizon {
				return false
			}
			for _, p := range rf.Points {
				if p.BestCaseUnits < p.AvgCaseUnits || p.AvgCaseUnits < p.WorstCaseUnits || p.WorstCaseUnits < 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(names)-1),
		gen.IntRange(0, 11),
	))

	properties.TestingRun(t)
}
