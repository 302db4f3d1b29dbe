package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycastapp/skycast/internal/airquality"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/session"
	"github.com/skycastapp/skycast/internal/store"
	"github.com/skycastapp/skycast/internal/units"
	"github.com/skycastapp/skycast/internal/weather"
)

var seoulZone = time.FixedZone("KST", 9*3600)

// mockProvider is a controllable weather.Provider.
type mockProvider struct {
	mu sync.Mutex

	currentErr error
	gates      map[string]chan struct{}

	aqSample *airquality.Sample
	aqErr    error

	fcSamples []weather.ForecastSample
	fcErr     error

	nameCalls  int
	coordCalls int
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		gates: make(map[string]chan struct{}),
		aqSample: &airquality.Sample{
			Index: 1,
			PM10:  12.4,
			PM25:  5.6,
		},
		fcSamples: defaultForecast(),
	}
}

func defaultForecast() []weather.ForecastSample {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, seoulZone)
	var samples []weather.ForecastSample
	for i := 0; i < 16; i++ {
		samples = append(samples, weather.ForecastSample{
			Time:      start.Add(time.Duration(i) * 3 * time.Hour),
			TempC:     10,
			TempMinC:  5,
			TempMaxC:  15,
			Condition: weather.ConditionClouds,
		})
	}
	return samples
}

func snapshotFor(name string) *weather.Snapshot {
	return &weather.Snapshot{
		Location: weather.Location{
			Name:        name,
			CountryCode: "KR",
			Lat:         37.57,
			Lon:         126.98,
		},
		Condition:   weather.ConditionClear,
		Description: "clear sky",
		TempC:       20,
		HumidityPct: 55,
		WindSpeedMS: 5,
		TZOffset:    9 * time.Hour,
		ObservedAt:  time.Now(),
	}
}

func (m *mockProvider) CurrentByName(_ context.Context, name string, _ i18n.Language) (*weather.Snapshot, error) {
	m.mu.Lock()
	m.nameCalls++
	gate := m.gates[name]
	err := m.currentErr
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return snapshotFor(name), nil
}

func (m *mockProvider) CurrentByCoords(_ context.Context, lat, lon float64, _ i18n.Language) (*weather.Snapshot, error) {
	m.mu.Lock()
	m.coordCalls++
	err := m.currentErr
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	snap := snapshotFor("Seoul")
	snap.Location.Lat = lat
	snap.Location.Lon = lon
	return snap, nil
}

func (m *mockProvider) AirQuality(_ context.Context, _, _ float64) (*airquality.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.aqErr != nil {
		return nil, m.aqErr
	}
	return m.aqSample, nil
}

func (m *mockProvider) Forecast(_ context.Context, _, _ float64, _ i18n.Language) ([]weather.ForecastSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fcErr != nil {
		return nil, m.fcErr
	}
	return m.fcSamples, nil
}

func (m *mockProvider) SearchCities(_ context.Context, _ string) ([]weather.Candidate, error) {
	return nil, nil
}

func (m *mockProvider) Name() string { return "mock" }

func newSession(provider weather.Provider, opts ...func(*session.Config)) *session.Session {
	cfg := session.Config{
		Provider: provider,
		Store:    store.NewMemoryStore(),
		Logger:   zerolog.Nop(),
		Language: i18n.English,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return session.New(cfg)
}

func TestLoadByName(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider)

	result, err := s.LoadByName(context.Background(), "Seoul")
	require.NoError(t, err)

	assert.Equal(t, "Seoul, South Korea", result.Weather.CityName)
	assert.Equal(t, "clear sky", result.Weather.Description)
	assert.Equal(t, 20, result.Weather.Temp)
	assert.Equal(t, 55, result.Weather.HumidityPct)
	assert.Equal(t, 5.0, result.Weather.WindSpeed)
	assert.Equal(t, "m/s", result.Weather.WindUnit)

	assert.True(t, result.Air.Available)
	assert.Equal(t, airquality.TierGood, result.Air.Tier)
	assert.Equal(t, "Good", result.Air.Label)
	assert.Equal(t, 12, result.Air.PM10)
	assert.Equal(t, 6, result.Air.PM25)

	require.Len(t, result.Daily, 2)
	assert.Equal(t, 5, result.Daily[0].Min)
	assert.Equal(t, 15, result.Daily[0].Max)
	require.NotNil(t, result.Chart)
	assert.Len(t, result.Chart.Points, 8)
	assert.Equal(t, 5, result.Chart.ScaleMin)
	assert.Equal(t, 15, result.Chart.ScaleMax)

	st := s.State()
	assert.Equal(t, "Seoul", st.Location.Name)
	assert.Equal(t, []string{"Seoul"}, st.Recent)
}

func TestLoadByName_Imperial(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider, func(cfg *session.Config) { cfg.Unit = units.Imperial })

	result, err := s.LoadByName(context.Background(), "Seoul")
	require.NoError(t, err)

	assert.Equal(t, 68, result.Weather.Temp) // 20°C
	assert.Equal(t, 11.2, result.Weather.WindSpeed)
	assert.Equal(t, "mph", result.Weather.WindUnit)
	assert.Equal(t, 41, result.Daily[0].Min) // 5°C
	assert.Equal(t, 59, result.Daily[0].Max) // 15°C
}

func TestLoadByName_NotFound(t *testing.T) {
	provider := newMockProvider()
	provider.currentErr = weather.ErrNotFound
	s := newSession(provider, func(cfg *session.Config) { cfg.Language = i18n.Korean })

	_, err := s.LoadByName(context.Background(), "Nowhereville")
	var loadErr *session.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "도시를 찾을 수 없습니다.", loadErr.Message)
	assert.ErrorIs(t, err, weather.ErrNotFound)

	// State stays untouched on primary failure.
	st := s.State()
	assert.Empty(t, st.Location.Name)
	assert.Empty(t, st.Recent)
}

func TestLoad_AirQualityUnavailable(t *testing.T) {
	provider := newMockProvider()
	provider.aqErr = weather.ErrUnavailable
	s := newSession(provider)

	result, err := s.LoadByName(context.Background(), "Seoul")
	require.NoError(t, err)

	assert.False(t, result.Air.Available)
	assert.Equal(t, airquality.TierUnknown, result.Air.Tier)
	assert.Equal(t, "-", result.Air.Label)
	// The primary render is unaffected.
	assert.Equal(t, 20, result.Weather.Temp)
}

func TestLoad_ForecastUnavailable(t *testing.T) {
	provider := newMockProvider()
	provider.fcErr = weather.ErrUnavailable
	s := newSession(provider)

	result, err := s.LoadByName(context.Background(), "Seoul")
	require.NoError(t, err)

	// Nil slots tell the renderer to keep prior forecast data.
	assert.Nil(t, result.Daily)
	assert.Nil(t, result.Chart)
	assert.Equal(t, 20, result.Weather.Temp)
	assert.True(t, result.Air.Available)
}

func TestLoad_StaleResultDiscarded(t *testing.T) {
	provider := newMockProvider()
	gate := make(chan struct{})
	provider.gates["Slowville"] = gate
	s := newSession(provider)

	done := make(chan error, 1)
	go func() {
		_, err := s.LoadByName(context.Background(), "Slowville")
		done <- err
	}()

	// Wait until load A is blocked in its primary fetch.
	require.Eventually(t, func() bool {
		provider.mu.Lock()
		defer provider.mu.Unlock()
		return provider.nameCalls == 1
	}, time.Second, time.Millisecond)

	// Load B supersedes A and completes.
	_, err := s.LoadByName(context.Background(), "Fastville")
	require.NoError(t, err)

	// A's late response must be discarded without touching state.
	close(gate)
	require.ErrorIs(t, <-done, session.ErrStale)

	st := s.State()
	assert.Equal(t, "Fastville", st.Location.Name)
	assert.Equal(t, []string{"Fastville"}, st.Recent)
}

func TestRecentCities_PersistedThroughStore(t *testing.T) {
	provider := newMockProvider()
	mem := store.NewMemoryStore()
	s := newSession(provider, func(cfg *session.Config) { cfg.Store = mem })

	_, err := s.LoadByName(context.Background(), "Seoul")
	require.NoError(t, err)
	_, err = s.LoadByName(context.Background(), "Tokyo")
	require.NoError(t, err)

	saved, err := mem.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo", "Seoul"}, saved)

	// A fresh session restores the persisted list.
	s2 := newSession(provider, func(cfg *session.Config) { cfg.Store = mem })
	require.NoError(t, s2.Restore(context.Background()))
	assert.Equal(t, []string{"Tokyo", "Seoul"}, s2.State().Recent)
}

func TestSetUnit_Reloads(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider)

	_, err := s.LoadByName(context.Background(), "Seoul")
	require.NoError(t, err)

	result, err := s.SetUnit(context.Background(), units.Imperial)
	require.NoError(t, err)

	// The toggle re-fetches rather than re-rendering locally.
	provider.mu.Lock()
	coordCalls := provider.coordCalls
	provider.mu.Unlock()
	assert.Equal(t, 1, coordCalls)
	assert.Equal(t, 68, result.Weather.Temp)
	assert.Equal(t, units.Imperial, s.State().Unit)
}

func TestSetLanguage_Reloads(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider)

	_, err := s.LoadByName(context.Background(), "Seoul")
	require.NoError(t, err)

	result, err := s.SetLanguage(context.Background(), i18n.Korean)
	require.NoError(t, err)

	assert.Equal(t, "서울, 대한민국", result.Weather.CityName)
	assert.Equal(t, i18n.Korean, s.State().Lang)
}

type funcLocator func(ctx context.Context) (float64, float64, error)

func (f funcLocator) Locate(ctx context.Context) (float64, float64, error) { return f(ctx) }

func TestLoadCurrent(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider)

	locator := funcLocator(func(context.Context) (float64, float64, error) {
		return 37.57, 126.98, nil
	})

	result, err := s.LoadCurrent(context.Background(), locator)
	require.NoError(t, err)
	assert.Equal(t, "Seoul, South Korea", result.Weather.CityName)
}

func TestLoadCurrent_Denied(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider, func(cfg *session.Config) { cfg.Language = i18n.Korean })

	locator := funcLocator(func(context.Context) (float64, float64, error) {
		return 0, 0, session.ErrGeolocationDenied
	})

	_, err := s.LoadCurrent(context.Background(), locator)
	var loadErr *session.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "위치 권한이 필요합니다.", loadErr.Message)
	assert.ErrorIs(t, err, session.ErrGeolocationDenied)
}

func TestLoadCurrent_Timeout(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider, func(cfg *session.Config) { cfg.GeoTimeout = 20 * time.Millisecond })

	locator := funcLocator(func(ctx context.Context) (float64, float64, error) {
		<-ctx.Done()
		return 0, 0, ctx.Err()
	})

	_, err := s.LoadCurrent(context.Background(), locator)
	assert.ErrorIs(t, err, session.ErrGeolocationTimeout)
}

func TestWorldCities(t *testing.T) {
	provider := newMockProvider()
	s := newSession(provider, func(cfg *session.Config) { cfg.Language = i18n.Korean })

	views := s.WorldCities(context.Background())
	require.Len(t, views, 8)

	assert.Equal(t, "New York", views[0].Name)
	assert.Equal(t, "뉴욕", views[0].DisplayName)
	assert.True(t, views[0].OK)
	assert.Equal(t, 20, views[0].Temp)
	assert.Equal(t, "London", views[1].Name)
}

func TestWorldCities_FailuresYieldPlaceholders(t *testing.T) {
	provider := newMockProvider()
	provider.currentErr = weather.ErrUnavailable
	s := newSession(provider)

	views := s.WorldCities(context.Background())
	require.Len(t, views, 8)
	for _, view := range views {
		assert.False(t, view.OK)
		assert.Equal(t, "ph-globe", view.Icon)
	}
}
