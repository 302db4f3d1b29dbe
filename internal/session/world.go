package session

import (
	"context"
	"sync"

	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/units"
)

// worldCities is the fixed world weather panel, in display order.
var worldCities = []string{
	"New York", "London", "Tokyo", "Paris",
	"Sydney", "Dubai", "Singapore", "Berlin",
}

// worldConcurrency bounds parallel provider calls for the panel.
const worldConcurrency = 3

// WorldCities fetches the fixed city panel with bounded concurrency. A
// failed city yields a placeholder row rather than being dropped, and the
// panel order is stable regardless of completion order.
func (s *Session) WorldCities(ctx context.Context) []WorldCityViewModel {
	s.mu.Lock()
	lang := s.state.Lang
	unit := s.state.Unit
	s.mu.Unlock()

	views := make([]WorldCityViewModel, len(worldCities))

	var wg sync.WaitGroup
	sem := make(chan struct{}, worldConcurrency)

	for i, city := range worldCities {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			views[i] = s.worldCityView(ctx, city, lang, unit)
		}(i, city)
	}
	wg.Wait()

	return views
}

func (s *Session) worldCityView(ctx context.Context, city string, lang i18n.Language, unit units.System) WorldCityViewModel {
	view := WorldCityViewModel{
		Name:        city,
		DisplayName: i18n.CityName(city, lang),
		Icon:        "ph-globe",
	}

	snap, err := s.provider.CurrentByName(ctx, city, lang)
	if err != nil {
		s.logger.Warn().Err(err).Str("city", city).Msg("world city fetch failed")
		return view
	}

	view.OK = true
	view.Icon = snap.Condition.Icon()
	view.Temp = roundTemp(snap.TempC, unit)
	return view
}
