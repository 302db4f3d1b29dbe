// Package forecast turns the flat 3-hourly forecast feed into the two shapes
// the UI renders: compact daily summaries and an hourly chart series.
package forecast

import (
	"time"

	"github.com/skycastapp/skycast/internal/weather"
)

const (
	// maxDays caps the daily view at today plus the next four days.
	maxDays = 5

	// chartPoints covers roughly the next 24 hours at 3-hour spacing.
	chartPoints = 8

	// scalePad keeps the plotted series off the chart edges.
	scalePad = 5.0
)

// DailySummary aggregates one calendar day of samples. Values stay in
// Celsius; unit conversion happens at render time.
type DailySummary struct {
	// DateKey is the city-local calendar day, formatted YYYY-MM-DD.
	DateKey string

	// Date is the time of the first sample seen for the day.
	Date time.Time

	// Condition is the day's representative condition: the first sample's,
	// unless a midday (12:00 or 15:00 local) sample overrides it.
	Condition weather.Condition

	MinC float64
	MaxC float64
}

// Point is one entry of the hourly chart series.
type Point struct {
	// Hour is the city-local hour of day, 0-23.
	Hour int

	Condition   weather.Condition
	Glyph       string
	Description string
	TempC       float64
}

// Scale is the chart's Y axis range, padded so the series never touches the
// plot edges.
type Scale struct {
	Min float64
	Max float64
}

// HourlySeries is the chart-ready slice of the next samples.
type HourlySeries struct {
	Points []Point
	Scale  Scale
}

// DailySummaries groups time-ordered samples by city-local calendar day and
// returns at most five summaries in first-seen (chronological) order. Empty
// input yields no summaries.
func DailySummaries(samples []weather.ForecastSample) []DailySummary {
	byDay := make(map[string]*DailySummary)
	var order []string

	for _, s := range samples {
		key := s.Time.Format("2006-01-02")
		day, ok := byDay[key]
		if !ok {
			byDay[key] = &DailySummary{
				DateKey:   key,
				Date:      s.Time,
				Condition: s.Condition,
				MinC:      s.TempMinC,
				MaxC:      s.TempMaxC,
			}
			order = append(order, key)
			continue
		}

		if s.TempMinC < day.MinC {
			day.MinC = s.TempMinC
		}
		if s.TempMaxC > day.MaxC {
			day.MaxC = s.TempMaxC
		}
		// The midday slot is the most representative of how the day feels.
		if h := s.Time.Hour(); h == 12 || h == 15 {
			day.Condition = s.Condition
		}
	}

	if len(order) > maxDays {
		order = order[:maxDays]
	}

	summaries := make([]DailySummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, *byDay[key])
	}
	return summaries
}

// HourlySeries24h takes the first eight samples verbatim, preserving order,
// and computes the padded chart scale from their temperatures. Shorter input
// is used as-is and never padded with synthetic values.
func HourlySeries24h(samples []weather.ForecastSample) HourlySeries {
	n := len(samples)
	if n > chartPoints {
		n = chartPoints
	}
	if n == 0 {
		return HourlySeries{}
	}

	points := make([]Point, 0, n)
	minC, maxC := samples[0].TempC, samples[0].TempC
	for _, s := range samples[:n] {
		if s.TempC < minC {
			minC = s.TempC
		}
		if s.TempC > maxC {
			maxC = s.TempC
		}
		points = append(points, Point{
			Hour:        s.Time.Hour(),
			Condition:   s.Condition,
			Glyph:       s.Condition.Glyph(),
			Description: s.Description,
			TempC:       s.TempC,
		})
	}

	return HourlySeries{
		Points: points,
		Scale:  Scale{Min: minC - scalePad, Max: maxC + scalePad},
	}
}
