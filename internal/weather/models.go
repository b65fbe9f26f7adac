package weather

import (
	"math"
	"time"
)

// IconCategory is the display icon a condition code resolves to.
type IconCategory string

const (
	IconClear   IconCategory = "clear"
	IconCloud   IconCategory = "cloud"
	IconDrizzle IconCategory = "drizzle"
	IconRain    IconCategory = "rain"
	IconSnow    IconCategory = "snow"

	// Display-only glyphs; no condition code resolves to these.
	IconHumidity IconCategory = "humidity"
	IconWind     IconCategory = "wind"
)

// CurrentConditions is the normalized view of the current-weather endpoint.
type CurrentConditions struct {
	Humidity    int          `json:"humidity"`
	WindSpeed   float64      `json:"windSpeedKmh"`
	Temperature int          `json:"temperatureC"`
	Location    string       `json:"location"`
	IconCode    string       `json:"iconCode"`
	Icon        IconCategory `json:"icon"`
	ObservedAt  time.Time    `json:"observedAt"` // in the city's UTC offset
}

// ForecastEntry is a single raw 3-hour slot from the forecast feed.
type ForecastEntry struct {
	Timestamp     string  `json:"timestamp"` // "YYYY-MM-DD HH:MM:SS"
	Temperature   float64 `json:"temperature"`
	ConditionCode string  `json:"conditionCode"`
}

// DailyForecast summarizes every entry of one calendar day.
type DailyForecast struct {
	Date                  string       `json:"date"` // "YYYY-MM-DD"
	AverageTemperature    float64      `json:"averageTemperatureC"`
	DominantConditionCode string       `json:"dominantConditionCode"`
	Icon                  IconCategory `json:"icon"`
}

// ForecastSet is the aggregated forecast.
// Days is ordered by first appearance in the feed. Dates always lists every
// distinct date seen, so it is one longer than Days when the trim rule applied.
type ForecastSet struct {
	Days  []DailyForecast `json:"days"`
	Dates []string        `json:"dates"`
}

// Trimmed reports whether the trailing partial day was dropped.
func (f ForecastSet) Trimmed() bool {
	return len(f.Dates) > len(f.Days)
}

// SearchResult is what a successful search produced.
type SearchResult struct {
	City     string            `json:"city"`
	Current  CurrentConditions `json:"current"`
	Forecast ForecastSet       `json:"forecast"`
}

// RoundHalfUp rounds to the nearest integer with halves going toward positive
// infinity, so 2.5 becomes 3 and -2.5 becomes -2.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
