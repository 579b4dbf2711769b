package timeseries

import (
	"math"
	"sort"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
)

const iqrFence = 1.5

// Quartiles returns nearest-rank Q1 and Q3 of values.
func Quartiles(values []int) (q1, q3 int) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	n := float64(len(sorted))
	return sorted[int(math.Floor(n*0.25))], sorted[int(math.Floor(n*0.75))]
}

// DetectAnomalies flags points strictly outside [Q1 - 1.5×IQR, Q3 + 1.5×IQR].
func DetectAnomalies(series []domain.HistoricalPoint) []domain.AnomalyPoint {
	if len(series) == 0 {
		return nil
	}

	units := make([]int, len(series))
	for i, p := range series {
		units[i] = p.Units
	}
	q1, q3 := Quartiles(units)
	iqr := float64(q3 - q1)
	lower := float64(q1) - iqrFence*iqr
	upper := float64(q3) + iqrFence*iqr

	out := make([]domain.AnomalyPoint, len(series))
	for i, p := range series {
		a := domain.AnomalyPoint{
			Period:     p.Period,
			Units:      p.Units,
			LowerBound: int(math.Round(lower)),
			UpperBound: int(math.Round(upper)),
		}
		switch u := float64(p.Units); {
		case u < lower:
			a.IsAnomaly, a.AnomalyType = true, domain.AnomalyLow
		case u > upper:
			a.IsAnomaly, a.AnomalyType = true, domain.AnomalyHigh
		}
		out[i] = a
	}
	return out
}
