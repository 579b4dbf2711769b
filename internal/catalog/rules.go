package catalog

import (
	"strings"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
)

// SeasonalGroup is the demand-seasonality class of a medicine.
type SeasonalGroup string

const (
	GroupSummerPeak    SeasonalGroup = "summer-peak"
	GroupWinterPeak    SeasonalGroup = "winter-peak"
	GroupMonsoonPeak   SeasonalGroup = "monsoon-peak"
	GroupSpringAllergy SeasonalGroup = "spring-allergy"
	GroupVitamin       SeasonalGroup = "vitamin"
	GroupPain          SeasonalGroup = "pain"
	GroupMuscleJoint   SeasonalGroup = "muscle-joint"
	GroupFlat          SeasonalGroup = "flat"
)

// VolumeTier is the coarse demand-volume class of a medicine.
type VolumeTier string

const (
	TierHigh       VolumeTier = "high"
	TierMediumHigh VolumeTier = "medium-high"
	TierMedium     VolumeTier = "medium"
	TierSpecialty  VolumeTier = "specialty"
	TierDefault    VolumeTier = "default"
)

// StockTier selects the range the simulated stock level is drawn from.
type StockTier string

const (
	StockCriticallyLow StockTier = "critically-low"
	StockModeratelyLow StockTier = "moderately-low"
	StockHighDemand    StockTier = "high-demand"
	StockMediumDemand  StockTier = "medium-demand"
	StockLowDemand     StockTier = "low-demand"
	StockDefault       StockTier = "default"
)

// Classification is the result of running a name through the rule tables.
type Classification struct {
	SeasonalGroup SeasonalGroup `json:"seasonal_group"`
	VolumeTier    VolumeTier    `json:"volume_tier"`
	StockTier     StockTier     `json:"stock_tier"`
}

type seasonalRule struct {
	group    SeasonalGroup
	keywords []string
	pattern  [12]float64
}

type volumeRule struct {
	tier       VolumeTier
	keywords   []string
	multiplier float64
}

type stockRule struct {
	tier     StockTier
	keywords []string
}

type weatherRule struct {
	keywords []string
	factors  map[domain.Weather]float64
}

// Rules are evaluated in order; the first rule with a keyword contained in the
// name wins. Matching is case-sensitive.
var seasonalRules = []seasonalRule{
	{GroupSummerPeak, []string{"Electral", "ORS", "Neutrogena", "Eno", "Gelusil"},
		[12]float64{0.6, 0.7, 0.9, 1.3, 1.5, 1.6, 1.4, 1.2, 1.0, 0.8, 0.6, 0.5}},
	{GroupWinterPeak, []string{"Crocin", "Dolo", "Benadryl", "Sinarest", "Vicks", "Grilinctus", "Chericof", "Honitus"},
		[12]float64{1.4, 1.3, 1.1, 0.8, 0.6, 0.5, 0.6, 0.8, 1.0, 1.2, 1.4, 1.5}},
	{GroupMonsoonPeak, []string{"Norflox", "Metronidazole", "Imodium", "Econorm", "Enterogermina", "Ciprofloxacin"},
		[12]float64{0.7, 0.7, 0.8, 0.9, 1.0, 1.3, 1.5, 1.4, 1.3, 1.0, 0.8, 0.7}},
	{GroupSpringAllergy, []string{"Cetirizine", "Allegra", "Montair"},
		[12]float64{0.8, 0.9, 1.3, 1.5, 1.4, 1.1, 0.9, 0.8, 0.9, 1.1, 1.0, 0.8}},
	{GroupVitamin, []string{"Livogen", "Shelcal", "Becosules", "Supradyn", "Zincovit", "Revital", "A to Z"},
		[12]float64{1.4, 1.3, 1.1, 1.0, 0.9, 0.9, 0.9, 0.9, 1.0, 1.0, 1.1, 1.2}},
	{GroupPain, []string{"Combiflam", "Brufen", "Nise", "Voveran", "Ultracet", "Sumo", "Saridon"},
		[12]float64{1.2, 1.1, 1.0, 0.9, 0.9, 0.8, 0.9, 0.9, 1.0, 1.1, 1.2, 1.3}},
	{GroupMuscleJoint, []string{"Volini", "Moov", "Iodex", "Flexon", "Thiocolchicoside"},
		[12]float64{1.3, 1.2, 1.0, 0.9, 0.8, 0.7, 0.8, 0.9, 1.0, 1.1, 1.3, 1.4}},
}

var flatPattern = [12]float64{1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0}

const defaultMultiplier = 0.9

var volumeRules = []volumeRule{
	{TierHigh, []string{"Crocin", "Dolo", "Paracetamol", "Cetirizine", "Electral", "ORS"}, 1.4},
	{TierMediumHigh, []string{"Benadryl", "Digene", "Combiflam", "Pan D", "Omez"}, 1.2},
	{TierMedium, []string{"Livogen", "Shelcal", "Becosules", "Vicks", "Betadine"}, 1.0},
	{TierSpecialty, []string{"Insulin", "Glucometer", "BP Monitor", "Pulse Oximeter"}, 0.6},
}

var stockRules = []stockRule{
	{StockCriticallyLow, []string{"Dolo", "Cetirizine", "Benadryl"}},
	{StockModeratelyLow, []string{"Sinarest", "Allegra", "Montair", "Vicks"}},
	{StockHighDemand, []string{"Crocin", "Dolo", "Paracetamol", "Cetirizine", "ORS", "Electral"}},
	{StockMediumDemand, []string{"Benadryl", "Digene", "Combiflam", "Pan D", "Omez", "Vicks"}},
	{StockLowDemand, []string{"Insulin", "Glucometer", "BP Monitor", "Pulse Oximeter"}},
}

var weatherRules = []weatherRule{
	{[]string{"Electral", "ORS"}, weatherFactors(1.8, 0.8, 0.48)},
	{[]string{"Sunscreen"}, weatherFactors(1.52, 0.6, 0.32)},
	{[]string{"Digene"}, weatherFactors(0.88, 1.0, 0.72)},
	{[]string{"Crocin"}, weatherFactors(0.72, 0.88, 1.28)},
	{[]string{"Livogen"}, weatherFactors(0.6, 0.72, 0.8)},
	{[]string{"Benadryl"}, weatherFactors(0.36, 0.6, 1.68)},
	{[]string{"Dolo"}, weatherFactors(0.4, 0.64, 1.8)},
	{[]string{"Cetirizine"}, weatherFactors(0.56, 0.76, 1.12)},
}

func weatherFactors(hot, cloudy, rainy float64) map[domain.Weather]float64 {
	return map[domain.Weather]float64{
		domain.WeatherHot:    hot,
		domain.WeatherCloudy: cloudy,
		domain.WeatherRainy:  rainy,
	}
}

func containsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// Classify runs name through the seasonal, volume and stock rule tables.
func Classify(name string) Classification {
	c := Classification{
		SeasonalGroup: GroupFlat,
		VolumeTier:    TierDefault,
		StockTier:     StockDefault,
	}

	for _, r := range seasonalRules {
		if containsAny(name, r.keywords) {
			c.SeasonalGroup = r.group
			break
		}
	}
	for _, r := range volumeRules {
		if containsAny(name, r.keywords) {
			c.VolumeTier = r.tier
			break
		}
	}
	for _, r := range stockRules {
		if containsAny(name, r.keywords) {
			c.StockTier = r.tier
			break
		}
	}

	return c
}

// SeasonalPattern returns the 12 monthly demand factors for medicine, January first.
// Unmatched names get a flat pattern.
func SeasonalPattern(medicine string) [12]float64 {
	for _, r := range seasonalRules {
		if containsAny(medicine, r.keywords) {
			return r.pattern
		}
	}
	return flatPattern
}

// SeasonalFactor is SeasonalPattern(medicine)[month].
func SeasonalFactor(medicine string, month domain.Month) float64 {
	if !month.Valid() {
		return 1.0
	}
	return SeasonalPattern(medicine)[month]
}

// BaseMultiplier returns the volume-tier multiplier for medicine.
func BaseMultiplier(medicine string) float64 {
	for _, r := range volumeRules {
		if containsAny(medicine, r.keywords) {
			return r.multiplier
		}
	}
	return defaultMultiplier
}

// WeatherFactor returns the weather multiplier for medicine; pairs missing from
// the table are neutral (1.0).
func WeatherFactor(weather domain.Weather, medicine string) float64 {
	for _, r := range weatherRules {
		if containsAny(medicine, r.keywords) {
			if f, ok := r.factors[weather]; ok {
				return f
			}
			return 1.0
		}
	}
	return 1.0
}

// WeatherSensitivity returns the factor for every supported weather.
func WeatherSensitivity(medicine string) map[domain.Weather]float64 {
	out := make(map[domain.Weather]float64, len(domain.Weathers))
	for _, w := range domain.Weathers {
		out[w] = WeatherFactor(w, medicine)
	}
	return out
}
