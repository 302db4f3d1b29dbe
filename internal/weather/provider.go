package weather

import (
	"context"

	"github.com/skycastapp/skycast/internal/airquality"
	"github.com/skycastapp/skycast/internal/i18n"
)

// Provider is the weather-data collaborator boundary. Implementations map
// transport failures to ErrNotFound / ErrUnavailable so callers never
// inspect transport details.
type Provider interface {
	// CurrentByName fetches current weather by free-text city name.
	CurrentByName(ctx context.Context, name string, lang i18n.Language) (*Snapshot, error)

	// CurrentByCoords fetches current weather by coordinates.
	CurrentByCoords(ctx context.Context, lat, lon float64, lang i18n.Language) (*Snapshot, error)

	// AirQuality fetches the current air quality sample for coordinates.
	AirQuality(ctx context.Context, lat, lon float64) (*airquality.Sample, error)

	// Forecast fetches the 3-hourly forecast feed, ordered ascending by
	// time, with sample times already placed in the city-local zone.
	Forecast(ctx context.Context, lat, lon float64, lang i18n.Language) ([]ForecastSample, error)

	// SearchCities returns up to 5 geocoding candidates for a query.
	SearchCities(ctx context.Context, query string) ([]Candidate, error)

	// Name identifies the provider for logging.
	Name() string
}
