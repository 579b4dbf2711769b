package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
)

const (
	// DefaultHorizonDays is used when callers do not pick a horizon.
	DefaultHorizonDays = 30
	// NoDemandCoverDays is reported when a medicine has no forecasted demand.
	NoDemandCoverDays = 999

	baseDailyUnits = 50.0
)

// StockSource supplies the current stock level of a medicine.
type StockSource interface {
	CurrentStock(medicine string) int
}

// Scorer evaluates stock-out risk against the seasonal demand of the current month.
type Scorer struct {
	stock StockSource
	now   func() time.Time
}

func NewScorer(stock StockSource) *Scorer {
	return &Scorer{stock: stock, now: time.Now}
}

// WithClock overrides the clock used to pick the current month.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// ForecastedDemand is round(50 × multiplier × seasonal(month) × horizonDays).
func ForecastedDemand(medicine string, month domain.Month, horizonDays int) int {
	daily := baseDailyUnits * catalog.BaseMultiplier(medicine)
	return int(math.Round(daily * catalog.SeasonalFactor(medicine, month) * float64(horizonDays)))
}

// CoverDays converts stock into days of demand. Zero demand yields NoDemandCoverDays.
func CoverDays(stock, demand, horizonDays int) int {
	daily := float64(demand) / float64(horizonDays)
	if daily <= 0 {
		return NoDemandCoverDays
	}
	return int(math.Round(float64(stock) / daily))
}

// Tier maps cover days to a tier and a score in [0,100].
func Tier(coverDays int) (domain.RiskTier, float64) {
	d := float64(coverDays)
	var (
		tier  domain.RiskTier
		score float64
	)
	switch {
	case coverDays <= 7:
		tier, score = domain.RiskCritical, 90+(7-d)*1.5
	case coverDays <= 14:
		tier, score = domain.RiskHigh, 70+(14-d)*2.5
	case coverDays <= 21:
		tier, score = domain.RiskMedium, 40+(21-d)*4
	default:
		tier, score = domain.RiskLow, math.Max(0, 40-(d-21)*2)
	}
	return tier, math.Min(100, math.Max(0, score))
}

// RecommendedOrder is the suggested order quantity for a tier; medium and low
// tiers recommend nothing.
func RecommendedOrder(tier domain.RiskTier, shortfall, demand int) int {
	switch tier {
	case domain.RiskCritical:
		return shortfall + int(math.Round(float64(demand)*0.2))
	case domain.RiskHigh:
		return shortfall + int(math.Round(float64(demand)*0.15))
	default:
		return 0
	}
}

func recommendation(tier domain.RiskTier, coverDays, order int) string {
	switch tier {
	case domain.RiskCritical:
		return fmt.Sprintf("Urgent reorder needed! Stock will deplete in %d days. Order %d units immediately.", coverDays, order)
	case domain.RiskHigh:
		return fmt.Sprintf("High priority reorder. Stock coverage is only %d days. Recommend ordering %d units.", coverDays, order)
	case domain.RiskMedium:
		return fmt.Sprintf("Schedule reorder within the week. Current stock covers %d days of demand.", coverDays)
	default:
		return fmt.Sprintf("Stock levels adequate. %d days of coverage. Monitor as usual.", coverDays)
	}
}

// AssessRisk evaluates one medicine over horizonDays.
func (s *Scorer) AssessRisk(medicine string, horizonDays int) (domain.RiskAssessment, error) {
	if strings.TrimSpace(medicine) == "" {
		return domain.RiskAssessment{}, domain.InvalidSelection("medicine", "is required")
	}
	if horizonDays <= 0 {
		return domain.RiskAssessment{}, domain.InvalidSelection("horizon_days", "must be positive, got %d", horizonDays)
	}

	current := s.stock.CurrentStock(medicine)
	demand := ForecastedDemand(medicine, domain.MonthOf(s.now()), horizonDays)
	cover := CoverDays(current, demand, horizonDays)
	shortfall := max(0, demand-current)
	tier, score := Tier(cover)
	order := RecommendedOrder(tier, shortfall, demand)

	return domain.RiskAssessment{
		Medicine:              medicine,
		CurrentStock:          current,
		ForecastedDemand:      demand,
		StockCoverDays:        cover,
		RiskTier:              tier,
		RiskScore:             score,
		ShortfallUnits:        shortfall,
		RecommendedOrderUnits: order,
		Recommendation:        recommendation(tier, cover, order),
	}, nil
}

// AssessAll evaluates every medicine and orders the result by descending score.
// Ties keep input order.
func (s *Scorer) AssessAll(medicines []string, horizonDays int) ([]domain.RiskAssessment, error) {
	out := make([]domain.RiskAssessment, 0, len(medicines))
	for _, m := range medicines {
		a, err := s.AssessRisk(m, horizonDays)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	return out, nil
}

// Summarize counts assessments per tier.
func Summarize(assessments []domain.RiskAssessment) domain.RiskSummary {
	var sum domain.RiskSummary
	for _, a := range assessments {
		switch a.RiskTier {
		case domain.RiskCritical:
			sum.Critical++
		case domain.RiskHigh:
			sum.High++
		case domain.RiskMedium:
			sum.Medium++
		default:
			sum.Low++
		}
	}
	return sum
}

// Report assesses medicines and bundles them with the tier summary.
func (s *Scorer) Report(medicines []string, horizonDays int) (domain.RiskReport, error) {
	assessments, err := s.AssessAll(medicines, horizonDays)
	if err != nil {
		return domain.RiskReport{}, err
	}
	return domain.RiskReport{
		HorizonDays: horizonDays,
		Summary:     Summarize(assessments),
		Assessments: assessments,
	}, nil
}
