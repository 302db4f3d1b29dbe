// Package suggest implements the debounced city autocomplete: it turns a
// stream of keystrokes into at most one geocode fetch per pause, suppresses
// stale results, and shapes matches into a render-ready list.
package suggest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/weather"
)

// State is the controller's lifecycle state, exposed for tests.
type State string

const (
	StateIdle       State = "IDLE"
	StateDebouncing State = "DEBOUNCING"
	StateFetching   State = "FETCHING"
	StateSettled    State = "SETTLED"
)

// minQueryLen is the shortest trimmed query that triggers a search.
const minQueryLen = 2

// Searcher is the geocoding subset of the weather provider.
type Searcher interface {
	SearchCities(ctx context.Context, query string) ([]weather.Candidate, error)
}

// Sink receives list view models as they become visible. It is the render
// collaborator boundary; implementations must be cheap and non-blocking.
type Sink interface {
	RenderSuggestions(vm ListViewModel)
}

// Item is one selectable suggestion.
type Item struct {
	// DisplayName prefers the native name for the active language, falling
	// back to the canonical name.
	DisplayName string `json:"display_name"`

	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ListViewModel is the render-ready suggestion list. An empty match set is
// expressed as NoResults with localized placeholder text, never as a
// visible empty list.
type ListViewModel struct {
	Visible   bool   `json:"visible"`
	Items     []Item `json:"items,omitempty"`
	NoResults bool   `json:"no_results"`

	// Placeholder carries the localized "no results" text when NoResults.
	Placeholder string `json:"placeholder,omitempty"`
}

// ControllerConfig holds configuration for the suggestion controller.
type ControllerConfig struct {
	// Searcher is the geocoding collaborator (required).
	Searcher Searcher

	// Sink receives visible list updates (required).
	Sink Sink

	// Language selects display names and placeholder text.
	Language i18n.Language

	// Window is the debounce window. Default: 300ms.
	Window time.Duration

	// FetchTimeout bounds each geocode call. Default: 10 seconds.
	FetchTimeout time.Duration

	// Logger for controller operations.
	Logger zerolog.Logger
}

// Controller debounces input and publishes suggestion lists.
type Controller struct {
	searcher     Searcher
	sink         Sink
	window       time.Duration
	fetchTimeout time.Duration
	logger       zerolog.Logger

	mu    sync.Mutex
	state State
	lang  i18n.Language
	timer *time.Timer

	// seq tags each initiated fetch; only the fetch holding the latest
	// value may publish its result.
	seq uint64
}

// NewController creates a suggestion controller.
func NewController(cfg ControllerConfig) *Controller {
	window := cfg.Window
	if window == 0 {
		window = 300 * time.Millisecond
	}
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = 10 * time.Second
	}
	lang := cfg.Language
	if lang == "" {
		lang = i18n.English
	}

	return &Controller{
		searcher:     cfg.Searcher,
		sink:         cfg.Sink,
		window:       window,
		fetchTimeout: fetchTimeout,
		logger:       cfg.Logger,
		state:        StateIdle,
		lang:         lang,
	}
}

// SetLanguage switches the display language for subsequent results.
func (c *Controller) SetLanguage(lang i18n.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = lang
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Input handles an input change. Queries shorter than two characters after
// trimming drop the controller back to Idle and hide any visible list; any
// longer query (re)arms the debounce timer, so only the last keystroke in a
// burst triggers a fetch.
func (c *Controller) Input(query string) {
	trimmed := strings.TrimSpace(query)

	c.mu.Lock()
	c.stopTimerLocked()

	if len([]rune(trimmed)) < minQueryLen {
		c.state = StateIdle
		c.seq++ // invalidate any in-flight fetch
		c.mu.Unlock()
		c.sink.RenderSuggestions(ListViewModel{Visible: false})
		return
	}

	c.state = StateDebouncing
	c.timer = time.AfterFunc(c.window, func() { c.fetch(trimmed) })
	c.mu.Unlock()
}

// Select acknowledges a chosen suggestion: the list is hidden and the item
// is returned for a coordinate-based load, which avoids re-resolving an
// ambiguous city name.
func (c *Controller) Select(item Item) Item {
	c.mu.Lock()
	c.stopTimerLocked()
	c.state = StateIdle
	c.seq++
	c.mu.Unlock()

	c.sink.RenderSuggestions(ListViewModel{Visible: false})
	return item
}

// Close cancels any pending debounce timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.state = StateIdle
	c.seq++
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fetch runs after the debounce window elapses uninterrupted.
func (c *Controller) fetch(query string) {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.state = StateFetching
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()

	candidates, err := c.searcher.SearchCities(ctx, query)

	c.mu.Lock()
	if token != c.seq {
		// A newer fetch or a reset superseded this one.
		c.mu.Unlock()
		return
	}
	c.state = StateSettled
	lang := c.lang
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("city search failed")
		return
	}

	c.sink.RenderSuggestions(buildList(candidates, lang))
}

// buildList shapes geocode candidates into the visible list.
func buildList(candidates []weather.Candidate, lang i18n.Language) ListViewModel {
	if len(candidates) == 0 {
		return ListViewModel{
			Visible:     true,
			NoResults:   true,
			Placeholder: i18n.MustTranslate(i18n.KeyNoResults, lang),
		}
	}

	items := make([]Item, 0, len(candidates))
	for _, cand := range candidates {
		name := cand.Name
		if local, ok := cand.LocalNames[string(lang)]; ok && local != "" {
			name = local
		}
		items = append(items, Item{
			DisplayName: name,
			Country:     i18n.CountryName(cand.CountryCode, lang),
			State:       cand.State,
			Lat:         cand.Lat,
			Lon:         cand.Lon,
		})
	}
	return ListViewModel{Visible: true, Items: items}
}
