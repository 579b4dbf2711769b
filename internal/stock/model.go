package stock

import (
	"math"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
)

// reorderRatio places the reorder level at 30% of the drawn stock.
const reorderRatio = 0.3

type stockRange struct {
	min, span int
}

// Draws are min + [0, span).
var tierRanges = map[catalog.StockTier]stockRange{
	catalog.StockCriticallyLow: {50, 200},
	catalog.StockModeratelyLow: {200, 400},
	catalog.StockHighDemand:    {400, 800},
	catalog.StockMediumDemand:  {600, 1200},
	catalog.StockLowDemand:     {100, 300},
	catalog.StockDefault:       {500, 1000},
}

var suppliers = []string{
	"MedSupply India",
	"Pharma Distributors Ltd",
	"HealthCare Logistics",
	"Apollo Pharmacy Wholesale",
	"Sun Pharma Direct",
	"Cipla Distribution",
	"Dr. Reddy's Supply Chain",
}

// Model simulates stock positions. Draws are random across sessions and stable
// within one: the first draw for a medicine is kept until ClearCache.
type Model struct {
	cache Cache
	rng   *random.Source
	now   func() time.Time
}

// NewModel wires a cache and random source; nil arguments get in-memory and
// clock-seeded defaults.
func NewModel(cache Cache, rng *random.Source) *Model {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if rng == nil {
		rng = random.New()
	}
	return &Model{cache: cache, rng: rng, now: time.Now}
}

// WithClock overrides the clock used for restock dates.
func (m *Model) WithClock(now func() time.Time) *Model {
	m.now = now
	return m
}

// Record returns the session stock record for medicine, drawing it on first use.
func (m *Model) Record(medicine string) domain.StockRecord {
	if rec, ok := m.cache.Get(medicine); ok {
		return rec
	}
	return m.cache.PutIfAbsent(medicine, m.draw(medicine))
}

// CurrentStock returns Record(medicine).CurrentStock.
func (m *Model) CurrentStock(medicine string) int {
	return m.Record(medicine).CurrentStock
}

// Records returns the records for medicines, drawing any that are missing.
func (m *Model) Records(medicines []string) []domain.StockRecord {
	out := make([]domain.StockRecord, len(medicines))
	for i, name := range medicines {
		out[i] = m.Record(name)
	}
	return out
}

// Session identifies the draws currently served by the model.
func (m *Model) Session() string {
	return m.cache.Session()
}

// ClearCache forgets every memoised draw.
func (m *Model) ClearCache() {
	m.cache.Clear()
}

func (m *Model) draw(medicine string) domain.StockRecord {
	r := tierRanges[catalog.Classify(medicine).StockTier]
	current := r.min + m.rng.IntN(r.span)

	daysAgo := m.rng.IntN(30) + 1
	restocked := m.now().AddDate(0, 0, -daysAgo)
	restocked = time.Date(restocked.Year(), restocked.Month(), restocked.Day(), 0, 0, 0, 0, time.UTC)

	return domain.StockRecord{
		Medicine:      medicine,
		CurrentStock:  current,
		ReorderLevel:  int(math.Round(float64(current) * reorderRatio)),
		LastRestocked: restocked,
		Supplier:      suppliers[m.rng.IntN(len(suppliers))],
	}
}
