package timeseries

import (
	"testing"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock() time.Time {
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func newSynth() *Synthesizer {
	return NewSynthesizer(random.NewSeeded(1, 2)).WithClock(clock)
}

func series(units ...int) []domain.HistoricalPoint {
	out := make([]domain.HistoricalPoint, len(units))
	for i, u := range units {
		m := domain.Month(i % 12)
		out[i] = domain.HistoricalPoint{
			Period:     m.Short(),
			Month:      m.Short(),
			MonthIndex: int(m),
			Year:       2022 + i/12,
			Units:      u,
		}
	}
	return out
}

func TestSynthesizeHistoryShape(t *testing.T) {
	h, err := newSynth().SynthesizeHistory("Crocin (Paracetamol)", 3)
	require.NoError(t, err)
	require.Len(t, h, 36)

	assert.Equal(t, "Jan 2022", h[0].Period)
	assert.Equal(t, "Dec 2024", h[35].Period)
	assert.Equal(t, 1400, h[0].Trend)
	assert.Equal(t, 1960, h[0].Seasonal)

	for i, p := range h {
		assert.Equal(t, i%12, p.MonthIndex)
		lo, hi := float64(p.Seasonal)*0.9-1, float64(p.Seasonal)*1.1+1
		assert.GreaterOrEqual(t, float64(p.Units), lo, p.Period)
		assert.LessOrEqual(t, float64(p.Units), hi, p.Period)
		assert.GreaterOrEqual(t, p.Revenue, p.Units*150)
		assert.LessOrEqual(t, p.Revenue, p.Units*200)
	}
	assert.Greater(t, h[35].Trend, h[0].Trend)
}

func TestSynthesizeHistoryValidation(t *testing.T) {
	_, err := newSynth().SynthesizeHistory("Crocin (Paracetamol)", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	_, err = newSynth().SynthesizeHistory("", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	_, err = newSynth().SynthesizeHistory("Crocin (Paracetamol)", MaxYears+1)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	_, err = newSynth().SynthesizeHistory("Crocin (Paracetamol)", 1<<60)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	points, err := newSynth().SynthesizeHistory("Crocin (Paracetamol)", MaxYears)
	require.NoError(t, err)
	assert.Len(t, points, 12*MaxYears)
}

func TestMovingAverage(t *testing.T) {
	ma, err := MovingAverage(series(10, 20, 30, 40, 51), 3)
	require.NoError(t, err)
	require.Len(t, ma, 5)

	assert.Nil(t, ma[0].MovingAvg)
	assert.Nil(t, ma[1].MovingAvg)
	require.NotNil(t, ma[2].MovingAvg)
	assert.Equal(t, 20, *ma[2].MovingAvg)
	assert.Equal(t, 30, *ma[3].MovingAvg)
	assert.Equal(t, 40, *ma[4].MovingAvg)

	_, err = MovingAverage(series(1), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestGrowthPct(t *testing.T) {
	assert.Equal(t, 0, GrowthPct(0, 100))
	assert.Equal(t, 50, GrowthPct(100, 150))
	assert.Equal(t, -25, GrowthPct(200, 150))
}

func TestYearOverYear(t *testing.T) {
	units := make([]int, 24)
	for i := 0; i < 12; i++ {
		units[i] = 100
		units[12+i] = 110
	}
	units[3] = 0

	cmp := YearOverYear(series(units...), 2022, 2023)
	require.Len(t, cmp, 12)
	assert.Equal(t, "Jan", cmp[0].Month)
	assert.Equal(t, 10, cmp[0].GrowthPct)
	assert.Equal(t, 0, cmp[3].GrowthPct)

	missing := YearOverYear(series(units[:12]...), 2022, 2023)
	require.Len(t, missing, 12)
	assert.Zero(t, missing[0].Year2Units)
	assert.Zero(t, missing[0].GrowthPct)
}

func TestSummarize(t *testing.T) {
	units := make([]int, 24)
	for i := range units {
		if i < 12 {
			units[i] = 100
		} else {
			units[i] = 120
		}
	}
	s := series(units...)
	anomalies := []domain.AnomalyPoint{{IsAnomaly: true}, {IsAnomaly: false}}

	sum := Summarize(s, anomalies)
	assert.Equal(t, 1440, sum.TotalUnits)
	assert.Equal(t, 120, sum.AvgUnits)
	assert.Equal(t, 20.0, sum.YoYGrowthPct)
	assert.Equal(t, 1, sum.AnomalyCount)

	short := Summarize(series(10, 20), nil)
	assert.Equal(t, 30, short.TotalUnits)
	assert.Zero(t, short.YoYGrowthPct)
}

func TestAnalyzeDefaults(t *testing.T) {
	a, err := newSynth().Analyze("Electral (ORS)", Options{})
	require.NoError(t, err)

	assert.Len(t, a.History, 36)
	assert.Len(t, a.MovingAverage, 36)
	assert.Len(t, a.Anomalies, 36)
	assert.Len(t, a.Comparison, 12)
	assert.Equal(t, 2023, a.Year1)
	assert.Equal(t, 2024, a.Year2)
}

func TestAnalyzeRejectsNegativeWindow(t *testing.T) {
	_, err := newSynth().Analyze("Electral (ORS)", Options{Window: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}
