// Package session orchestrates location loads: it resolves a location,
// fans out to the air quality and forecast feeds, applies unit and language
// preferences, and produces render-ready view models. A monotonic sequence
// number guards against late-arriving responses from superseded loads.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skycastapp/skycast/internal/airquality"
	"github.com/skycastapp/skycast/internal/forecast"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/store"
	"github.com/skycastapp/skycast/internal/units"
	"github.com/skycastapp/skycast/internal/weather"
)

// Session errors.
var (
	// ErrStale marks a load superseded by a newer one. It is never shown
	// to the user; callers simply drop the result.
	ErrStale = errors.New("load superseded by a newer request")

	// ErrGeolocationDenied is returned by Locator implementations when the
	// user refuses the position prompt.
	ErrGeolocationDenied = errors.New("geolocation permission denied")

	// ErrGeolocationTimeout marks a position request that exceeded the
	// bounded wait.
	ErrGeolocationTimeout = errors.New("geolocation timed out")
)

// Locator is the geolocation collaborator. Locate must honor context
// cancellation; the session bounds the wait.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// Config holds configuration for a session.
type Config struct {
	// Provider is the weather-data collaborator (required).
	Provider weather.Provider

	// Store persists the recent-cities list (required).
	Store store.RecentStore

	// Logger for session operations.
	Logger zerolog.Logger

	// Unit is the initial unit system. Default: Metric.
	Unit units.System

	// Language is the initial display language. Default: Korean, matching
	// the app's primary audience.
	Language i18n.Language

	// GeoTimeout bounds geolocation acquisition. Default: 10 seconds.
	GeoTimeout time.Duration
}

// Session is the single active weather session.
type Session struct {
	provider   weather.Provider
	store      store.RecentStore
	logger     zerolog.Logger
	tracer     trace.Tracer
	geoTimeout time.Duration

	mu    sync.Mutex
	state State

	// seq tags each load; only the holder of the latest value may commit
	// state or return a result.
	seq atomic.Uint64
}

// New creates a session with defaults filled in.
func New(cfg Config) *Session {
	unit := cfg.Unit
	if unit == "" {
		unit = units.Metric
	}
	lang := cfg.Language
	if lang == "" {
		lang = i18n.Korean
	}
	geoTimeout := cfg.GeoTimeout
	if geoTimeout == 0 {
		geoTimeout = 10 * time.Second
	}

	return &Session{
		provider:   cfg.Provider,
		store:      cfg.Store,
		logger:     cfg.Logger,
		tracer:     otel.Tracer("skycast/session"),
		geoTimeout: geoTimeout,
		state: State{
			Unit: unit,
			Lang: lang,
		},
	}
}

// Restore loads the persisted recent-cities list into the session.
func (s *Session) Restore(ctx context.Context) error {
	recent, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Recent = recent
	return nil
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Recent = append([]string(nil), s.state.Recent...)
	return st
}

// LoadByName loads weather for a free-text city name.
func (s *Session) LoadByName(ctx context.Context, name string) (*LoadResult, error) {
	return s.load(ctx, i18n.KeyCityNotFound, func(ctx context.Context, lang i18n.Language) (*weather.Snapshot, error) {
		return s.provider.CurrentByName(ctx, name, lang)
	})
}

// LoadByCoords loads weather for coordinates, as used by suggestion
// selection and geolocation.
func (s *Session) LoadByCoords(ctx context.Context, lat, lon float64) (*LoadResult, error) {
	return s.load(ctx, i18n.KeyLocationFailed, func(ctx context.Context, lang i18n.Language) (*weather.Snapshot, error) {
		return s.provider.CurrentByCoords(ctx, lat, lon, lang)
	})
}

// LoadCurrent resolves the device position through the locator, bounded to
// the configured wait, then loads by coordinates. Denial and timeout
// surface as localized errors and leave state untouched.
func (s *Session) LoadCurrent(ctx context.Context, locator Locator) (*LoadResult, error) {
	locateCtx, cancel := context.WithTimeout(ctx, s.geoTimeout)
	defer cancel()

	lat, lon, err := locator.Locate(locateCtx)
	if err != nil {
		lang := s.language()
		switch {
		case errors.Is(err, ErrGeolocationDenied):
			return nil, &LoadError{Message: i18n.MustTranslate(i18n.KeyLocationDenied, lang), Err: ErrGeolocationDenied}
		case errors.Is(err, context.DeadlineExceeded):
			return nil, &LoadError{Message: i18n.MustTranslate(i18n.KeyLocationTimeout, lang), Err: ErrGeolocationTimeout}
		default:
			return nil, &LoadError{Message: i18n.MustTranslate(i18n.KeyLocationFailed, lang), Err: err}
		}
	}

	return s.LoadByCoords(ctx, lat, lon)
}

// SetUnit switches the display unit system and reloads the current location
// so every surface re-renders consistently.
func (s *Session) SetUnit(ctx context.Context, sys units.System) (*LoadResult, error) {
	s.mu.Lock()
	s.state.Unit = sys
	s.mu.Unlock()
	return s.reload(ctx)
}

// SetLanguage switches the display language and reloads so localized
// condition descriptions are refreshed from the source.
func (s *Session) SetLanguage(ctx context.Context, lang i18n.Language) (*LoadResult, error) {
	s.mu.Lock()
	s.state.Lang = lang
	s.mu.Unlock()
	return s.reload(ctx)
}

// reload re-runs the full load for the current location. Coordinates are
// preferred once known; before any successful load the configured default
// city name is not available, so reload falls back to the stored name.
func (s *Session) reload(ctx context.Context) (*LoadResult, error) {
	s.mu.Lock()
	loc := s.state.Location
	s.mu.Unlock()

	if loc.Lat != 0 || loc.Lon != 0 {
		return s.LoadByCoords(ctx, loc.Lat, loc.Lon)
	}
	return s.LoadByName(ctx, loc.Name)
}

func (s *Session) language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Lang
}

// load runs one full location-load: primary weather, then air quality and
// forecast concurrently. Each secondary failure degrades independently; a
// primary failure is surfaced localized with state untouched.
func (s *Session) load(ctx context.Context, notFoundKey string, fetch func(context.Context, i18n.Language) (*weather.Snapshot, error)) (*LoadResult, error) {
	seq := s.seq.Add(1)
	loadID := uuid.NewString()[:8]

	s.mu.Lock()
	lang := s.state.Lang
	unit := s.state.Unit
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "session.load",
		trace.WithAttributes(attribute.String("load_id", loadID)))
	defer span.End()

	snap, err := fetch(ctx, lang)
	if err != nil {
		s.logger.Warn().Err(err).Str("load_id", loadID).Msg("primary weather fetch failed")
		return nil, &LoadError{Message: i18n.MustTranslate(notFoundKey, lang), Err: err}
	}

	// Commit location and recent list only while still the latest load.
	s.mu.Lock()
	if seq != s.seq.Load() {
		s.mu.Unlock()
		return nil, ErrStale
	}
	s.state.Location = snap.Location
	s.state.Recent = pushRecent(s.state.Recent, snap.Location.Name)
	recent := append([]string(nil), s.state.Recent...)
	s.mu.Unlock()

	if saveErr := s.store.Save(ctx, recent); saveErr != nil {
		s.logger.Warn().Err(saveErr).Msg("persisting recent cities failed")
	}

	// Air quality and forecast depend on the primary response's
	// coordinates and run concurrently with each other. Each updates only
	// its own slot, so completion order does not matter.
	var (
		wg        sync.WaitGroup
		aqSample  *airquality.Sample
		fcSamples []weather.ForecastSample
		fcErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sample, aqErr := s.provider.AirQuality(ctx, snap.Location.Lat, snap.Location.Lon)
		if aqErr != nil {
			s.logger.Warn().Err(aqErr).Str("load_id", loadID).Msg("air quality unavailable")
			return
		}
		aqSample = sample
	}()
	go func() {
		defer wg.Done()
		fcSamples, fcErr = s.provider.Forecast(ctx, snap.Location.Lat, snap.Location.Lon, lang)
	}()
	wg.Wait()

	if seq != s.seq.Load() {
		return nil, ErrStale
	}

	result := &LoadResult{
		Weather: buildWeatherView(snap, unit, lang),
		Air:     buildAirView(aqSample, lang),
	}

	if fcErr != nil {
		// Leave Daily and Chart nil so the renderer keeps prior data.
		s.logger.Warn().Err(fcErr).Str("load_id", loadID).Msg("forecast unavailable")
	} else {
		result.Daily = buildDailyViews(forecast.DailySummaries(fcSamples), unit)
		result.Chart = buildChartView(forecast.HourlySeries24h(fcSamples), unit)
	}

	s.logger.Info().
		Str("load_id", loadID).
		Str("city", snap.Location.Name).
		Str("provider", s.provider.Name()).
		Msg("location loaded")

	return result, nil
}
