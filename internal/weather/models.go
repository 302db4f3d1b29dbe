// Package weather defines the domain model for current conditions and the
// provider boundary the session fetches through.
package weather

import (
	"errors"
	"time"
)

// Provider errors. NotFound means the primary lookup failed and is surfaced
// to the user; Unavailable is a degradable failure of a secondary feed.
var (
	ErrNotFound    = errors.New("location not found")
	ErrUnavailable = errors.New("weather provider unavailable")
)

// Location identifies a place. Identity is (Lat, Lon) once known; Name is
// only used for the initial lookup.
type Location struct {
	Name        string
	CountryCode string
	Lat         float64
	Lon         float64
}

// Snapshot represents current conditions at a location. Values are always
// metric (Celsius, m/s); display units are derived at render time and never
// stored.
type Snapshot struct {
	Location    Location
	Condition   Condition
	Description string

	TempC       float64
	HumidityPct int
	WindSpeedMS float64

	// TZOffset is the location's UTC offset. It pins forecast day grouping
	// to the city's calendar rather than the viewer's.
	TZOffset time.Duration

	ObservedAt time.Time
}

// ForecastSample is one 3-hour interval of the forecast feed. Time carries
// the city-local zone so calendar-day grouping is deterministic across
// viewers.
type ForecastSample struct {
	Time        time.Time
	TempC       float64
	TempMinC    float64
	TempMaxC    float64
	Condition   Condition
	Description string
}

// Candidate is a geocoding match for a free-text city query.
type Candidate struct {
	Name        string
	Lat         float64
	Lon         float64
	CountryCode string
	State       string

	// LocalNames maps language codes to native city names, when known.
	LocalNames map[string]string
}

// Condition represents the general weather condition.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionClouds       Condition = "CLOUDS"
	ConditionRain         Condition = "RAIN"
	ConditionDrizzle      Condition = "DRIZZLE"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionSnow         Condition = "SNOW"
	ConditionMist         Condition = "MIST"
	ConditionFog          Condition = "FOG"
	ConditionHaze         Condition = "HAZE"
	ConditionUnknown      Condition = "UNKNOWN"
)

// Glyph returns the emoji used on chart axis labels.
func (c Condition) Glyph() string {
	switch c {
	case ConditionClear:
		return "☀️"
	case ConditionClouds:
		return "☁️"
	case ConditionRain:
		return "🌧️"
	case ConditionSnow:
		return "❄️"
	case ConditionThunderstorm:
		return "⚡"
	case ConditionDrizzle:
		return "🌦️"
	case ConditionMist, ConditionHaze, ConditionFog:
		return "🌫️"
	default:
		return "🌡️"
	}
}

// Icon returns the icon class the render collaborator uses for the condition.
func (c Condition) Icon() string {
	switch c {
	case ConditionClear:
		return "ph-sun"
	case ConditionClouds:
		return "ph-cloud"
	case ConditionRain:
		return "ph-cloud-rain"
	case ConditionSnow:
		return "ph-snowflake"
	case ConditionThunderstorm:
		return "ph-cloud-lightning"
	case ConditionDrizzle:
		return "ph-cloud-drizzle"
	case ConditionMist, ConditionHaze, ConditionFog:
		return "ph-cloud-fog"
	default:
		return "ph-cloud-sun"
	}
}

// Zone returns the snapshot's fixed city-local time zone.
func (s *Snapshot) Zone() *time.Location {
	return time.FixedZone("city", int(s.TZOffset/time.Second))
}
