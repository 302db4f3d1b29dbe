package openweathermap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/weather"
	"github.com/skycastapp/skycast/internal/weather/openweathermap"
)

const currentWeatherJSON = `{
	"coord": {"lat": 37.5683, "lon": 126.9778},
	"weather": [{"main": "Clear", "description": "맑음"}],
	"main": {"temp": 21.4, "temp_min": 19.0, "temp_max": 23.1, "humidity": 48},
	"wind": {"speed": 3.6},
	"dt": 1767340800,
	"timezone": 32400,
	"name": "Seoul",
	"sys": {"country": "KR"}
}`

const forecastJSON = `{
	"list": [
		{"dt": 1767340800, "main": {"temp": 10, "temp_min": 8, "temp_max": 12},
		 "weather": [{"main": "Clouds", "description": "구름"}]},
		{"dt": 1767351600, "main": {"temp": 14, "temp_min": 11, "temp_max": 15},
		 "weather": [{"main": "Rain", "description": "비"}]}
	],
	"city": {"timezone": 32400}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*openweathermap.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		GeoURL:  srv.URL,
		Logger:  zerolog.Nop(),
	})
	return client, srv
}

func TestCurrentByName(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"units": r.URL.Query().Get("units"),
			"lang":  r.URL.Query().Get("lang"),
		}
		w.Write([]byte(currentWeatherJSON))
	})

	snap, err := client.CurrentByName(context.Background(), "Seoul", i18n.Korean)
	require.NoError(t, err)

	assert.Equal(t, "Seoul", gotQuery["q"])
	assert.Equal(t, "metric", gotQuery["units"])
	// OpenWeatherMap spells Korean as "kr".
	assert.Equal(t, "kr", gotQuery["lang"])

	assert.Equal(t, "Seoul", snap.Location.Name)
	assert.Equal(t, "KR", snap.Location.CountryCode)
	assert.Equal(t, weather.ConditionClear, snap.Condition)
	assert.Equal(t, 21.4, snap.TempC)
	assert.Equal(t, 48, snap.HumidityPct)
	assert.Equal(t, 3.6, snap.WindSpeedMS)
	assert.Equal(t, 9*3600, int(snap.TZOffset.Seconds()))
}

func TestCurrentByName_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.CurrentByName(context.Background(), "Nowhereville", i18n.English)
	assert.ErrorIs(t, err, weather.ErrNotFound)
}

func TestCurrentByCoords_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CurrentByCoords(context.Background(), 37.57, 126.98, i18n.English)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestAirQuality(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"list":[{"main":{"aqi":3},"components":{"pm10":44.1,"pm2_5":21.7}}]}`))
	})

	sample, err := client.AirQuality(context.Background(), 37.57, 126.98)
	require.NoError(t, err)
	assert.Equal(t, 3, sample.Index)
	assert.Equal(t, 44.1, sample.PM10)
	assert.Equal(t, 21.7, sample.PM25)
}

func TestAirQuality_EmptyList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"list":[]}`))
	})

	_, err := client.AirQuality(context.Background(), 37.57, 126.98)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestForecast(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(forecastJSON))
	})

	samples, err := client.Forecast(context.Background(), 37.57, 126.98, i18n.Korean)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, weather.ConditionClouds, samples[0].Condition)
	assert.Equal(t, 8.0, samples[0].TempMinC)
	assert.Equal(t, 12.0, samples[0].TempMaxC)

	// Sample times are pinned to the city zone from the feed.
	_, offset := samples[0].Time.Zone()
	assert.Equal(t, 9*3600, offset)
	assert.True(t, samples[0].Time.Before(samples[1].Time))
}

func TestSearchCities(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"name":"Seoul","local_names":{"ko":"서울"},"lat":37.5683,"lon":126.9778,"country":"KR"},
			{"name":"Seoul","lat":40.0,"lon":-80.0,"country":"US","state":"Pennsylvania"}
		]`))
	})

	candidates, err := client.SearchCities(context.Background(), "seoul")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "서울", candidates[0].LocalNames["ko"])
	assert.Equal(t, "Pennsylvania", candidates[1].State)
}
