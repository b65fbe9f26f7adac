package weather

import "strings"

// trimDayCount is the distinct-day count at which the trailing partial day
// of a 5-day/3-hour feed is dropped.
const trimDayCount = 6

// dayGroups is an insertion-ordered map from calendar date to the entries of that date.
type dayGroups struct {
	order   []string
	entries map[string][]ForecastEntry
}

func newDayGroups() *dayGroups {
	return &dayGroups{entries: make(map[string][]ForecastEntry)}
}

func (g *dayGroups) add(date string, e ForecastEntry) {
	if _, ok := g.entries[date]; !ok {
		g.order = append(g.order, date)
	}
	g.entries[date] = append(g.entries[date], e)
}

// Dates returns the distinct dates in first-occurrence order.
func (g *dayGroups) Dates() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *dayGroups) Len() int { return len(g.order) }

// entryDate returns the date portion of a "YYYY-MM-DD HH:MM:SS" timestamp.
func entryDate(ts string) string {
	date, _, _ := strings.Cut(ts, " ")
	return date
}

// AggregateForecast groups raw 3-hour entries by calendar day, keeping feed order.
// Each day gets the mean temperature and the most frequent condition code, where the
// first code to reach the highest count wins ties. When the feed spans exactly six
// distinct dates the last day is dropped from Days but kept in Dates.
func AggregateForecast(entries []ForecastEntry) ForecastSet {
	groups := newDayGroups()
	for _, e := range entries {
		groups.add(entryDate(e.Timestamp), e)
	}

	dates := groups.Dates()
	temps := make([]float64, 0, len(dates))
	codes := make([]string, 0, len(dates))

	for _, date := range dates {
		day := groups.entries[date]
		temps = append(temps, averageTemperature(day))
		codes = append(codes, dominantCondition(day))
	}

	if len(temps) == trimDayCount {
		temps = temps[:len(temps)-1]
	}
	if len(codes) == trimDayCount {
		codes = codes[:len(codes)-1]
	}

	days := make([]DailyForecast, 0, len(temps))
	for i := range temps {
		days = append(days, DailyForecast{
			Date:                  dates[i],
			AverageTemperature:    temps[i],
			DominantConditionCode: codes[i],
			Icon:                  ResolveIcon(codes[i]),
		})
	}

	return ForecastSet{
		Days:  days,
		Dates: dates,
	}
}

func averageTemperature(entries []ForecastEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += e.Temperature
	}
	return sum / float64(len(entries))
}

// dominantCondition returns the mode of the condition codes. The leader only changes
// when a code's running count strictly exceeds the current maximum.
func dominantCondition(entries []ForecastEntry) string {
	counts := make(map[string]int, len(entries))
	var leader string
	maxCount := 0

	for _, e := range entries {
		counts[e.ConditionCode]++
		if counts[e.ConditionCode] > maxCount {
			maxCount = counts[e.ConditionCode]
			leader = e.ConditionCode
		}
	}
	return leader
}
