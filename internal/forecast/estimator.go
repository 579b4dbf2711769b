package forecast

import (
	"math"
	"strings"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
)

// BaseUnits is the monthly unit volume before any multiplier is applied.
const BaseUnits = 250

// Selection identifies one estimate. An empty Weather selects season-only mode.
type Selection struct {
	Medicine string
	Month    domain.Month
	Weather  domain.Weather
}

// Validate checks the required inputs of a selection.
func (s Selection) Validate() error {
	if strings.TrimSpace(s.Medicine) == "" {
		return domain.InvalidSelection("medicine", "is required")
	}
	if !s.Month.Valid() {
		return domain.InvalidSelection("month", "must be between 0 and 11, got %d", int(s.Month))
	}
	if s.Weather != "" {
		if _, ok := domain.ParseWeather(string(s.Weather)); !ok {
			return domain.InvalidSelection("weather", "unknown condition %q", s.Weather)
		}
	}
	return nil
}

// Estimator combines base units, the medicine multiplier, the seasonal factor
// and the weather factor into a unit and revenue estimate.
type Estimator struct {
	mode domain.PriceMode
	rng  *random.Source
}

// NewEstimator returns an estimator with the given price mode. rng is only
// consulted in randomized mode; nil gets a clock-seeded source.
func NewEstimator(mode domain.PriceMode, rng *random.Source) *Estimator {
	if mode != domain.PriceRandomized {
		mode = domain.PriceFixed
	}
	if rng == nil {
		rng = random.New()
	}
	return &Estimator{mode: mode, rng: rng}
}

// Mode reports the active price mode.
func (e *Estimator) Mode() domain.PriceMode {
	return e.mode
}

// UnitPrice returns the fixed price, or a fresh draw in randomized mode.
func (e *Estimator) UnitPrice() float64 {
	if e.mode == domain.PriceRandomized {
		return e.rng.Uniform(domain.MinRandomPrice, domain.MaxRandomPrice)
	}
	return domain.FixedUnitPrice
}

// Units returns round(BaseUnits × multiplier × seasonal × weatherFactor), never negative.
func Units(medicine string, month domain.Month, weatherFactor float64) int {
	u := math.Round(BaseUnits * catalog.BaseMultiplier(medicine) * catalog.SeasonalFactor(medicine, month) * weatherFactor)
	if u < 0 {
		return 0
	}
	return int(u)
}

// Revenue derives revenue from already rounded units.
func Revenue(units int, unitPrice float64) float64 {
	return math.Round(float64(units) * unitPrice)
}

// Estimate computes the point estimate for sel.
func (e *Estimator) Estimate(sel Selection) (domain.Estimate, error) {
	if err := sel.Validate(); err != nil {
		return domain.Estimate{}, err
	}

	weatherFactor := 1.0
	if sel.Weather != "" {
		w, _ := domain.ParseWeather(string(sel.Weather))
		sel.Weather = w
		weatherFactor = catalog.WeatherFactor(w, sel.Medicine)
	}

	units := Units(sel.Medicine, sel.Month, weatherFactor)
	price := e.UnitPrice()

	return domain.Estimate{
		Medicine:  sel.Medicine,
		Month:     sel.Month.Name(),
		Season:    sel.Month.Season(),
		Weather:   sel.Weather,
		Units:     units,
		Revenue:   Revenue(units, price),
		UnitPrice: price,
	}, nil
}

// CompareWeather returns one estimate per supported weather for medicine in month.
func (e *Estimator) CompareWeather(medicine string, month domain.Month) ([]domain.Estimate, error) {
	out := make([]domain.Estimate, 0, len(domain.Weathers))
	for _, w := range domain.Weathers {
		est, err := e.Estimate(Selection{Medicine: medicine, Month: month, Weather: w})
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}

// YearlyProfile returns a season-only estimate for every month, January first.
func (e *Estimator) YearlyProfile(medicine string) ([]domain.Estimate, error) {
	out := make([]domain.Estimate, 0, 12)
	for m := domain.Month(0); m < 12; m++ {
		est, err := e.Estimate(Selection{Medicine: medicine, Month: m})
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}
