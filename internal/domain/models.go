package domain

import "time"

// StockRecord represents the simulated stock position of a medicine
type StockRecord struct {
	Medicine      string    `json:"medicine"`
	CurrentStock  int       `json:"current_stock"`
	ReorderLevel  int       `json:"reorder_level"`
	LastRestocked time.Time `json:"last_restocked"`
	Supplier      string    `json:"supplier"`
}

// Estimate is a point demand estimate for one (medicine, month, weather) selection
type Estimate struct {
	Medicine  string  `json:"medicine"`
	Month     string  `json:"month"`
	Season    Season  `json:"season"`
	Weather   Weather `json:"weather,omitempty"`
	Units     int     `json:"forecast_units"`
	Revenue   float64 `json:"revenue"`
	UnitPrice float64 `json:"unit_price"`
}

// ForecastPoint is one month of a best/worst/average range projection
type ForecastPoint struct {
	Period           string  `json:"month"`
	FullMonth        string  `json:"full_month"`
	Season           Season  `json:"season"`
	BestCaseUnits    int     `json:"best_case"`
	WorstCaseUnits   int     `json:"worst_case"`
	AvgCaseUnits     int     `json:"avg_case"`
	Range            int     `json:"range"`
	BestCaseRevenue  float64 `json:"best_case_revenue"`
	WorstCaseRevenue float64 `json:"worst_case_revenue"`
	AvgCaseRevenue   float64 `json:"avg_revenue"`
	UnitPrice        float64 `json:"unit_price"`
}

// RangeTotals aggregates the per-month values of a range projection
type RangeTotals struct {
	BestCaseUnits    int     `json:"best_case"`
	WorstCaseUnits   int     `json:"worst_case"`
	AvgCaseUnits     int     `json:"avg_case"`
	BestCaseRevenue  float64 `json:"best_case_revenue"`
	WorstCaseRevenue float64 `json:"worst_case_revenue"`
	AvgCaseRevenue   float64 `json:"avg_revenue"`
}

// RangeForecast is a 12-month projection for one medicine
type RangeForecast struct {
	Medicine string          `json:"medicine"`
	Points   []ForecastPoint `json:"points"`
	Totals   RangeTotals     `json:"totals"`
}

// ForecastRecord is the persisted summary of a generated forecast.
// ID and CreatedAt are assigned by the store.
type ForecastRecord struct {
	ID               string    `json:"id" db:"id"`
	OwnerID          string    `json:"user_id" db:"user_id"`
	Medicine         string    `json:"medicine" db:"medicine"`
	Weather          string    `json:"weather" db:"weather"`
	Month            *string   `json:"month" db:"month"`
	ForecastUnits    int       `json:"forecast_units" db:"forecast_units"`
	Revenue          float64   `json:"revenue" db:"revenue"`
	PredictionPeriod *string   `json:"prediction_period" db:"prediction_period"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// RiskAssessment is the stock-out risk evaluation of one medicine
type RiskAssessment struct {
	Medicine              string   `json:"medicine"`
	CurrentStock          int      `json:"current_stock"`
	ForecastedDemand      int      `json:"forecasted_demand"`
	StockCoverDays        int      `json:"stock_cover_days"`
	RiskTier              RiskTier `json:"risk_level"`
	RiskScore             float64  `json:"risk_score"`
	ShortfallUnits        int      `json:"shortfall_units"`
	RecommendedOrderUnits int      `json:"recommended_order_units"`
	Recommendation        string   `json:"recommendation"`
}

// RiskSummary counts assessments per tier
type RiskSummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// RiskReport bundles every assessment for a horizon, highest risk first
type RiskReport struct {
	HorizonDays int              `json:"horizon_days"`
	Summary     RiskSummary      `json:"summary"`
	Assessments []RiskAssessment `json:"assessments"`
}

// HistoricalPoint is one synthesized month of sales history
type HistoricalPoint struct {
	Period     string `json:"period"`
	Month      string `json:"month"`
	MonthIndex int    `json:"month_index"`
	Year       int    `json:"year"`
	Units      int    `json:"units"`
	Revenue    int    `json:"revenue"`
	Trend      int    `json:"trend"`
	Seasonal   int    `json:"seasonal"`
	Residual   int    `json:"residual"`
}

// MovingAveragePoint pairs a period with its trailing average; MovingAvg is nil
// until the window is full.
type MovingAveragePoint struct {
	Period    string `json:"period"`
	Units     int    `json:"units"`
	MovingAvg *int   `json:"moving_avg"`
}

// AnomalyDirection tags which bound an anomalous observation crossed
type AnomalyDirection string

const (
	AnomalyLow  AnomalyDirection = "low"
	AnomalyHigh AnomalyDirection = "high"
)

// AnomalyPoint flags one historical point against the IQR fences
type AnomalyPoint struct {
	Period      string           `json:"period"`
	Units       int              `json:"units"`
	IsAnomaly   bool             `json:"is_anomaly"`
	AnomalyType AnomalyDirection `json:"anomaly_type,omitempty"`
	LowerBound  int              `json:"lower_bound"`
	UpperBound  int              `json:"upper_bound"`
}

// YearComparison is a same-month pair from two years of history
type YearComparison struct {
	Month        string `json:"month"`
	Year1Units   int    `json:"year1_units"`
	Year2Units   int    `json:"year2_units"`
	Year1Revenue int    `json:"year1_revenue"`
	Year2Revenue int    `json:"year2_revenue"`
	GrowthPct    int    `json:"growth"`
}

// HistorySummary holds headline numbers for the most recent 12 months
type HistorySummary struct {
	TotalUnits   int     `json:"total_units"`
	AvgUnits     int     `json:"avg_units"`
	YoYGrowthPct float64 `json:"yoy_growth"`
	AnomalyCount int     `json:"anomaly_count"`
}

// HistoryAnalytics is the full analytics bundle for one medicine
type HistoryAnalytics struct {
	Medicine      string               `json:"medicine"`
	History       []HistoricalPoint    `json:"history"`
	MovingAverage []MovingAveragePoint `json:"moving_average"`
	Anomalies     []AnomalyPoint       `json:"anomalies"`
	Comparison    []YearComparison     `json:"comparison"`
	Year1         int                  `json:"year1"`
	Year2         int                  `json:"year2"`
	Summary       HistorySummary       `json:"summary"`
}
