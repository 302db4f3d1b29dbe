// Package handler implements the API endpoints over the weather session.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/skycastapp/skycast/internal/api/response"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/session"
	"github.com/skycastapp/skycast/internal/units"
	"github.com/skycastapp/skycast/internal/weather"
)

// WeatherHandler serves location loads, preferences, the recent list, and
// the world panel.
type WeatherHandler struct {
	session *session.Session

	// onLanguage propagates language switches to the suggestion
	// controller so both surfaces stay consistent.
	onLanguage func(i18n.Language)
}

// NewWeatherHandler creates a weather handler. onLanguage may be nil.
func NewWeatherHandler(s *session.Session, onLanguage func(i18n.Language)) *WeatherHandler {
	return &WeatherHandler{session: s, onLanguage: onLanguage}
}

// GetWeather handles GET /v1/weather?city= or ?lat=&lon=.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		result *session.LoadResult
		err    error
	)

	switch {
	case query.Get("city") != "":
		result, err = h.session.LoadByName(r.Context(), query.Get("city"))
	case query.Get("lat") != "" && query.Get("lon") != "":
		lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(query.Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			response.BadRequest(w, r, "lat and lon must be decimal coordinates")
			return
		}
		result, err = h.session.LoadByCoords(r.Context(), lat, lon)
	default:
		response.BadRequest(w, r, "either city or lat/lon is required")
		return
	}

	if err != nil {
		h.writeLoadError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// GetRecent handles GET /v1/recent.
func (h *WeatherHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string][]string{
		"cities": h.session.State().Recent,
	})
}

// GetWorld handles GET /v1/world.
func (h *WeatherHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.session.WorldCities(r.Context()))
}

type prefsRequest struct {
	Unit string `json:"unit,omitempty"`
	Lang string `json:"lang,omitempty"`
}

// UpdatePrefs handles PUT /v1/prefs. Each toggle re-runs the full load so
// the response always reflects the new preferences.
func (h *WeatherHandler) UpdatePrefs(w http.ResponseWriter, r *http.Request) {
	var req prefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}

	var (
		result *session.LoadResult
		err    error
	)

	if req.Unit != "" {
		sys, ok := parseUnit(req.Unit)
		if !ok {
			response.BadRequest(w, r, "unit must be metric or imperial")
			return
		}
		result, err = h.session.SetUnit(r.Context(), sys)
		if err != nil {
			h.writeLoadError(w, r, err)
			return
		}
	}

	if req.Lang != "" {
		lang, ok := parseLanguage(req.Lang)
		if !ok {
			response.BadRequest(w, r, "lang must be ko or en")
			return
		}
		if h.onLanguage != nil {
			h.onLanguage(lang)
		}
		result, err = h.session.SetLanguage(r.Context(), lang)
		if err != nil {
			h.writeLoadError(w, r, err)
			return
		}
	}

	if result == nil {
		response.BadRequest(w, r, "nothing to update")
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

func (h *WeatherHandler) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	var loadErr *session.LoadError
	switch {
	case errors.Is(err, session.ErrStale):
		// Superseded by a newer load; the newer response is the one that
		// matters to the client.
		response.JSON(w, r, http.StatusConflict, nil)
	case errors.As(err, &loadErr) && errors.Is(err, weather.ErrNotFound):
		response.NotFound(w, r, loadErr.Message)
	case errors.As(err, &loadErr):
		response.ServiceUnavailable(w, r, loadErr.Message)
	default:
		response.InternalError(w, r, "load failed")
	}
}

func parseUnit(s string) (units.System, bool) {
	switch s {
	case "metric":
		return units.Metric, true
	case "imperial":
		return units.Imperial, true
	default:
		return "", false
	}
}

func parseLanguage(s string) (i18n.Language, bool) {
	switch s {
	case "ko":
		return i18n.Korean, true
	case "en":
		return i18n.English, true
	default:
		return "", false
	}
}
