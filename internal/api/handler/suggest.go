package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycastapp/skycast/internal/api/response"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/suggest"
)

// suggestBridge adapts the controller's push-style render sink to the
// request/response shape of the endpoint. Each request subscribes before
// feeding its query in, then waits for the next published list. Because the
// controller only publishes the latest non-stale result, every waiter that
// is still around when a list lands receives that same list.
type suggestBridge struct {
	mu      sync.Mutex
	waiters []chan suggest.ListViewModel
}

func (b *suggestBridge) RenderSuggestions(vm suggest.ListViewModel) {
	b.mu.Lock()
	waiters := b.waiters
	b.waiters = nil
	b.mu.Unlock()

	for _, ch := range waiters {
		ch <- vm
	}
}

func (b *suggestBridge) subscribe() chan suggest.ListViewModel {
	ch := make(chan suggest.ListViewModel, 1)
	b.mu.Lock()
	b.waiters = append(b.waiters, ch)
	b.mu.Unlock()
	return ch
}

func (b *suggestBridge) unsubscribe(ch chan suggest.ListViewModel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, w := range b.waiters {
		if w == ch {
			b.waiters = append(b.waiters[:i], b.waiters[i+1:]...)
			return
		}
	}
}

// SuggestHandlerConfig holds configuration for the suggestion endpoint.
type SuggestHandlerConfig struct {
	// Searcher is the geocoding collaborator (required).
	Searcher suggest.Searcher

	// Language is the initial display language.
	Language i18n.Language

	// Window is the debounce window applied to bursts of queries.
	Window time.Duration

	// Wait bounds how long a request waits for a published list.
	// Default: 12 seconds (debounce window plus fetch timeout headroom).
	Wait time.Duration

	Logger zerolog.Logger
}

// SuggestHandler serves GET /v1/suggest backed by the debouncing controller.
type SuggestHandler struct {
	controller *suggest.Controller
	bridge     *suggestBridge
	wait       time.Duration
}

// NewSuggestHandler creates the suggestion endpoint and its controller.
func NewSuggestHandler(cfg SuggestHandlerConfig) *SuggestHandler {
	wait := cfg.Wait
	if wait == 0 {
		wait = 12 * time.Second
	}

	bridge := &suggestBridge{}
	controller := suggest.NewController(suggest.ControllerConfig{
		Searcher: cfg.Searcher,
		Sink:     bridge,
		Language: cfg.Language,
		Window:   cfg.Window,
		Logger:   cfg.Logger,
	})

	return &SuggestHandler{
		controller: controller,
		bridge:     bridge,
		wait:       wait,
	}
}

// SetLanguage switches the language used for display names and placeholders.
func (h *SuggestHandler) SetLanguage(lang i18n.Language) {
	h.controller.SetLanguage(lang)
}

// Close releases the controller's pending debounce timer.
func (h *SuggestHandler) Close() {
	h.controller.Close()
}

// Search handles GET /v1/suggest?q=. Sub-minimum queries resolve
// immediately with a hidden list; longer ones wait out the debounce window
// and the geocode fetch. A request superseded by a newer query still
// returns the newest published list, mirroring what the user sees.
func (h *SuggestHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	ch := h.bridge.subscribe()
	h.controller.Input(query)

	// Short queries reset the controller without publishing; answer with
	// the hidden list right away instead of waiting for a render that
	// will never come.
	if h.controller.State() == suggest.StateIdle {
		h.bridge.unsubscribe(ch)
		response.JSON(w, r, http.StatusOK, suggest.ListViewModel{})
		return
	}

	select {
	case vm := <-ch:
		response.JSON(w, r, http.StatusOK, vm)
	case <-time.After(h.wait):
		h.bridge.unsubscribe(ch)
		response.JSON(w, r, http.StatusOK, suggest.ListViewModel{})
	case <-r.Context().Done():
		h.bridge.unsubscribe(ch)
	}
}
