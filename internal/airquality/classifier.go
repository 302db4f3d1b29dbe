// Package airquality classifies the provider's 1-5 air quality index into
// qualitative tiers and carries the particulate readings shown alongside.
package airquality

import "github.com/skycastapp/skycast/internal/i18n"

// Sample is a point-in-time air quality reading.
type Sample struct {
	// Index is the provider's air quality index, 1 (best) to 5 (worst).
	Index int

	// Particulate concentrations in µg/m³.
	PM10 float64
	PM25 float64
}

// Tier is a qualitative, language-independent air quality classification.
type Tier string

const (
	TierGood     Tier = "GOOD"
	TierFair     Tier = "FAIR"
	TierModerate Tier = "MODERATE"
	TierPoor     Tier = "POOR"
	TierVeryPoor Tier = "VERY_POOR"
	TierUnknown  Tier = "UNKNOWN"
)

// Classify maps an index value to its tier. Anything outside 1-5, including
// missing data encoded as zero, degrades to TierUnknown rather than erroring.
func Classify(index int) Tier {
	switch index {
	case 1:
		return TierGood
	case 2:
		return TierFair
	case 3:
		return TierModerate
	case 4:
		return TierPoor
	case 5:
		return TierVeryPoor
	default:
		return TierUnknown
	}
}

// Key returns the translation key for the tier's short display name.
func (t Tier) Key() string {
	switch t {
	case TierGood:
		return i18n.KeyAirGood
	case TierFair:
		return i18n.KeyAirFair
	case TierModerate:
		return i18n.KeyAirModerate
	case TierPoor:
		return i18n.KeyAirPoor
	case TierVeryPoor:
		return i18n.KeyAirVeryPoor
	default:
		return i18n.KeyAirUnknown
	}
}

// DescKey returns the translation key for the tier's advisory text.
func (t Tier) DescKey() string {
	switch t {
	case TierGood:
		return i18n.KeyAirGoodDesc
	case TierFair:
		return i18n.KeyAirFairDesc
	case TierModerate:
		return i18n.KeyAirModerateDesc
	case TierPoor:
		return i18n.KeyAirPoorDesc
	case TierVeryPoor:
		return i18n.KeyAirVeryPoorDesc
	default:
		return i18n.KeyAirUnknownDesc
	}
}
