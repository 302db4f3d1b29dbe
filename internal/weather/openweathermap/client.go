// Package openweathermap implements the weather.Provider boundary against
// the OpenWeatherMap current weather, air pollution, 5-day forecast, and
// direct geocoding APIs.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycastapp/skycast/internal/airquality"
	"github.com/skycastapp/skycast/internal/httpx"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/weather"
)

const (
	// ProviderName identifies this provider in logs.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap data API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultGeoURL is the OpenWeatherMap geocoding API base URL.
	DefaultGeoURL = "https://api.openweathermap.org/geo/1.0"

	// searchLimit bounds geocoding results per the suggestion UI.
	searchLimit = 5
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL overrides the data API base URL, for tests.
	BaseURL string

	// GeoURL overrides the geocoding API base URL, for tests.
	GeoURL string

	// HTTPClient is the outbound client. If nil, a default is created.
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client implementing weather.Provider.
type Client struct {
	apiKey     string
	baseURL    string
	geoURL     string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	geoURL := cfg.GeoURL
	if geoURL == "" {
		geoURL = DefaultGeoURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient(httpx.ClientConfig{Name: ProviderName})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		geoURL:     geoURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CurrentByName fetches current weather by free-text city name.
func (c *Client) CurrentByName(ctx context.Context, name string, lang i18n.Language) (*weather.Snapshot, error) {
	q := url.Values{}
	q.Set("q", name)
	return c.fetchCurrent(ctx, q, lang)
}

// CurrentByCoords fetches current weather by coordinates.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64, lang i18n.Language) (*weather.Snapshot, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	return c.fetchCurrent(ctx, q, lang)
}

func (c *Client) fetchCurrent(ctx context.Context, q url.Values, lang i18n.Language) (*weather.Snapshot, error) {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", apiLang(lang))

	var resp currentWeatherResponse
	if err := c.getJSON(ctx, c.baseURL+"/weather?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return toSnapshot(&resp), nil
}

// AirQuality fetches the current air quality sample for coordinates.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (*airquality.Sample, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	q.Set("appid", c.apiKey)

	var resp airPollutionResponse
	if err := c.getJSON(ctx, c.baseURL+"/air_pollution?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.List) == 0 {
		return nil, weather.ErrUnavailable
	}

	entry := resp.List[0]
	return &airquality.Sample{
		Index: entry.Main.AQI,
		PM10:  entry.Components.PM10,
		PM25:  entry.Components.PM25,
	}, nil
}

// Forecast fetches the 3-hourly forecast feed. Sample times are placed in
// the city-local fixed zone reported by the feed so that calendar-day
// grouping follows the city's clock.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, lang i18n.Language) ([]weather.ForecastSample, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", apiLang(lang))

	var resp forecastResponse
	if err := c.getJSON(ctx, c.baseURL+"/forecast?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	zone := time.FixedZone("city", resp.City.Timezone)
	samples := make([]weather.ForecastSample, 0, len(resp.List))
	for _, item := range resp.List {
		sample := weather.ForecastSample{
			Time:     time.Unix(item.Dt, 0).In(zone),
			TempC:    item.Main.Temp,
			TempMinC: item.Main.TempMin,
			TempMaxC: item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			sample.Condition = mapCondition(item.Weather[0].Main)
			sample.Description = item.Weather[0].Description
		} else {
			sample.Condition = weather.ConditionUnknown
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// SearchCities returns up to five geocoding candidates for a query.
func (c *Client) SearchCities(ctx context.Context, query string) ([]weather.Candidate, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", fmt.Sprintf("%d", searchLimit))
	q.Set("appid", c.apiKey)

	var resp []geocodeResponse
	if err := c.getJSON(ctx, c.geoURL+"/direct?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	candidates := make([]weather.Candidate, 0, len(resp))
	for _, item := range resp {
		candidates = append(candidates, weather.Candidate{
			Name:        item.Name,
			Lat:         item.Lat,
			Lon:         item.Lon,
			CountryCode: item.Country,
			State:       item.State,
			LocalNames:  item.LocalNames,
		})
	}
	return candidates, nil
}

// getJSON executes a GET and decodes the response, mapping HTTP failures to
// the domain error taxonomy.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("provider", ProviderName).Msg("request failed")
		return fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return weather.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %d", weather.ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", weather.ErrUnavailable, err)
	}
	return nil
}

// apiLang maps the app language to OpenWeatherMap's lang parameter, which
// uses "kr" rather than the ISO "ko".
func apiLang(lang i18n.Language) string {
	if lang == i18n.Korean {
		return "kr"
	}
	return "en"
}

// toSnapshot converts the current weather response to the domain model.
func toSnapshot(resp *currentWeatherResponse) *weather.Snapshot {
	snap := &weather.Snapshot{
		Location: weather.Location{
			Name:        resp.Name,
			CountryCode: resp.Sys.Country,
			Lat:         resp.Coord.Lat,
			Lon:         resp.Coord.Lon,
		},
		TempC:       resp.Main.Temp,
		HumidityPct: resp.Main.Humidity,
		WindSpeedMS: resp.Wind.Speed,
		TZOffset:    time.Duration(resp.Timezone) * time.Second,
		ObservedAt:  time.Unix(resp.Dt, 0),
	}

	if len(resp.Weather) > 0 {
		snap.Condition = mapCondition(resp.Weather[0].Main)
		snap.Description = resp.Weather[0].Description
	} else {
		snap.Condition = weather.ConditionUnknown
	}
	return snap
}

// mapCondition maps an OpenWeatherMap condition group to the domain enum.
func mapCondition(owmCondition string) weather.Condition {
	switch owmCondition {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionClouds
	case "Rain":
		return weather.ConditionRain
	case "Drizzle":
		return weather.ConditionDrizzle
	case "Thunderstorm":
		return weather.ConditionThunderstorm
	case "Snow":
		return weather.ConditionSnow
	case "Mist":
		return weather.ConditionMist
	case "Fog":
		return weather.ConditionFog
	case "Haze", "Dust", "Sand", "Ash", "Squall", "Tornado":
		return weather.ConditionHaze
	default:
		return weather.ConditionUnknown
	}
}

// OpenWeatherMap API response structures.

type currentWeatherResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
	Sys      struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			PM10 float64 `json:"pm10"`
			PM25 float64 `json:"pm2_5"`
		} `json:"components"`
	} `json:"list"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
}

type geocodeResponse struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state"`
}
