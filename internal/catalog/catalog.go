package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Entry is the immutable catalog view of one medicine.
type Entry struct {
	Name               string                     `json:"name"`
	Category           string                     `json:"category"`
	Classification     Classification             `json:"classification"`
	SeasonalPattern    [12]float64                `json:"seasonal_pattern"`
	BaseMultiplier     float64                    `json:"base_multiplier"`
	WeatherSensitivity map[domain.Weather]float64 `json:"weather_sensitivity"`
}

// NewEntry resolves every lookup for name. It is total: unknown names get the
// fallback pattern and multiplier.
func NewEntry(name, category string) Entry {
	if category == "" {
		category = OtherCategory
	}
	return Entry{
		Name:               name,
		Category:           category,
		Classification:     Classify(name),
		SeasonalPattern:    SeasonalPattern(name),
		BaseMultiplier:     BaseMultiplier(name),
		WeatherSensitivity: WeatherSensitivity(name),
	}
}

// Catalog holds the entries loaded at start-up.
type Catalog struct {
	entries    []Entry
	byName     map[string]int
	categories []string
}

// New builds a catalog from category -> medicines. Category order follows order;
// categories missing from order are appended alphabetically.
func New(categories map[string][]string, order []string) *Catalog {
	seen := make(map[string]bool, len(categories))
	var ordered []string
	for _, c := range order {
		if _, ok := categories[c]; ok && !seen[c] {
			ordered = append(ordered, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range categories {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	cat := &Catalog{byName: make(map[string]int)}
	for _, c := range ordered {
		for _, name := range categories[c] {
			if _, dup := cat.byName[name]; dup {
				continue
			}
			cat.byName[name] = len(cat.entries)
			cat.entries = append(cat.entries, NewEntry(name, c))
		}
	}
	cat.categories = ordered

	return cat
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in pharmacy catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(defaultCategories, categoryOrder)
	})
	return defaultCatalog
}

// Medicines returns every medicine name in catalog order.
func (c *Catalog) Medicines() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Categories returns category names in display order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Entry returns the catalog entry for name. Names outside the catalog are
// resolved through the rule tables with the "Other" category; ok reports
// whether the name is listed.
func (c *Catalog) Entry(name string) (Entry, bool) {
	if i, ok := c.byName[name]; ok {
		return c.entries[i], true
	}
	return NewEntry(name, OtherCategory), false
}

// Category returns the category of name, or OtherCategory.
func (c *Catalog) Category(name string) string {
	if i, ok := c.byName[name]; ok {
		return c.entries[i].Category
	}
	return OtherCategory
}

type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// Search returns entries whose name fuzzily matches query, best match first.
// An empty query returns every entry. category narrows the result when set.
func (c *Catalog) Search(query, category string) []Entry {
	pool := c.entries
	if category = strings.TrimSpace(category); category != "" {
		pool = make([]Entry, 0, len(c.entries))
		for _, e := range c.entries {
			if strings.EqualFold(e.Category, category) {
				pool = append(pool, e)
			}
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return append([]Entry(nil), pool...)
	}

	matches := fuzzy.FindFrom(query, entrySource(pool))
	results := make([]Entry, len(matches))
	for i, m := range matches {
		results[i] = pool[m.Index]
	}
	return results
}
