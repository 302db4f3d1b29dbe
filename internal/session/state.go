package session

import (
	"strings"

	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/units"
	"github.com/skycastapp/skycast/internal/weather"
)

// maxRecent caps the recent-searches list.
const maxRecent = 5

// State is the session's explicit mutable state. It is only mutated by user
// actions (search, toggles, geolocation) after the triggering request has
// settled, and always under the session mutex.
type State struct {
	Location weather.Location
	Unit     units.System
	Lang     i18n.Language

	// Recent is most-recent-first, capped at maxRecent, with no two
	// entries equal under case-insensitive comparison.
	Recent []string
}

// pushRecent returns a new list with city at the front. An existing
// case-insensitive match moves to the front instead of duplicating, and the
// result is truncated to maxRecent.
func pushRecent(list []string, city string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, city)
	for _, existing := range list {
		if strings.EqualFold(existing, city) {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > maxRecent {
		out = out[:maxRecent]
	}
	return out
}
