package domain

import (
	"strings"
	"time"
)

// Weather is a short-horizon weather scenario.
type Weather string

const (
	WeatherHot    Weather = "Hot"
	WeatherCloudy Weather = "Cloudy"
	WeatherRainy  Weather = "Rainy"
)

// Weathers lists every supported scenario in display order.
var Weathers = []Weather{WeatherHot, WeatherCloudy, WeatherRainy}

var weatherCodes = map[string]Weather{
	"hot":    WeatherHot,
	"cloudy": WeatherCloudy,
	"rainy":  WeatherRainy,
}

// ParseWeather returns the weather for a given label (case-insensitive).
func ParseWeather(label string) (Weather, bool) {
	w, ok := weatherCodes[strings.ToLower(strings.TrimSpace(label))]

	return w, ok
}

// Season is one of the five canonical demand seasons.
type Season string

const (
	SeasonWinter  Season = "Winter"
	SeasonSpring  Season = "Spring"
	SeasonSummer  Season = "Summer"
	SeasonMonsoon Season = "Monsoon"
	SeasonAutumn  Season = "Autumn"
)

// Month is a calendar month indexed from 0 (January) to 11 (December).
type Month int

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthSeasons = [12]Season{
	SeasonWinter, SeasonWinter,
	SeasonSpring, SeasonSpring,
	SeasonSummer, SeasonSummer,
	SeasonMonsoon, SeasonMonsoon, SeasonMonsoon,
	SeasonAutumn, SeasonAutumn,
	SeasonWinter,
}

// Valid reports whether m is within January..December.
func (m Month) Valid() bool {
	return m >= 0 && m < 12
}

// Name returns the full month name, e.g. "January".
func (m Month) Name() string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m]
}

// Short returns the three-letter label, e.g. "Jan".
func (m Month) Short() string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m][:3]
}

// Season returns the season the month is bound to.
func (m Month) Season() Season {
	if !m.Valid() {
		return ""
	}
	return monthSeasons[m]
}

// Add advances the month by n, wrapping through December.
func (m Month) Add(n int) Month {
	return Month(((int(m)+n)%12 + 12) % 12)
}

// MonthOf returns the Month of t.
func MonthOf(t time.Time) Month {
	return Month(t.Month() - time.January)
}

// ParseMonth accepts full names or three-letter abbreviations (case-insensitive).
func ParseMonth(label string) (Month, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) < 3 {
		return 0, false
	}
	for i, name := range monthNames {
		lower := strings.ToLower(name)
		if label == lower || label == lower[:3] {
			return Month(i), true
		}
	}

	return 0, false
}

// PriceMode selects how the unit price of an estimate is chosen.
type PriceMode string

const (
	// PriceFixed uses FixedUnitPrice for every estimate.
	PriceFixed PriceMode = "fixed"
	// PriceRandomized draws a unit price uniformly from [MinRandomPrice, MaxRandomPrice).
	PriceRandomized PriceMode = "randomized"
)

const (
	FixedUnitPrice = 50.0
	MinRandomPrice = 50.0
	MaxRandomPrice = 80.0
)

// ParsePriceMode falls back to PriceFixed for unknown values.
func ParsePriceMode(label string) PriceMode {
	if strings.EqualFold(strings.TrimSpace(label), string(PriceRandomized)) {
		return PriceRandomized
	}

	return PriceFixed
}

// RiskTier is the stock-out risk classification.
type RiskTier string

const (
	RiskCritical RiskTier = "critical"
	RiskHigh     RiskTier = "high"
	RiskMedium   RiskTier = "medium"
	RiskLow      RiskTier = "low"
)
