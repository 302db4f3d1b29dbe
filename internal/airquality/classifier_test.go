package airquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skycastapp/skycast/internal/airquality"
	"github.com/skycastapp/skycast/internal/i18n"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		index int
		want  airquality.Tier
	}{
		{1, airquality.TierGood},
		{2, airquality.TierFair},
		{3, airquality.TierModerate},
		{4, airquality.TierPoor},
		{5, airquality.TierVeryPoor},
		{0, airquality.TierUnknown},
		{6, airquality.TierUnknown},
		{-1, airquality.TierUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, airquality.Classify(tt.index), "index %d", tt.index)
	}
}

// Every tier must resolve to a real entry in both language tables, since the
// localizer has no fallback for missing keys.
func TestTierKeysTranslate(t *testing.T) {
	tiers := []airquality.Tier{
		airquality.TierGood,
		airquality.TierFair,
		airquality.TierModerate,
		airquality.TierPoor,
		airquality.TierVeryPoor,
		airquality.TierUnknown,
	}

	for _, tier := range tiers {
		for _, lang := range []i18n.Language{i18n.Korean, i18n.English} {
			_, err := i18n.Translate(tier.Key(), lang)
			assert.NoError(t, err, "tier %s name in %s", tier, lang)
			_, err = i18n.Translate(tier.DescKey(), lang)
			assert.NoError(t, err, "tier %s desc in %s", tier, lang)
		}
	}
}
