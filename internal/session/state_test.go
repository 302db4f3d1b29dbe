package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushRecent(t *testing.T) {
	var list []string
	for _, city := range []string{"Seoul", "Tokyo", "London", "Paris", "Berlin", "Dubai"} {
		list = pushRecent(list, city)
	}

	// Six pushes leave exactly five, most recent first.
	assert.Equal(t, []string{"Dubai", "Berlin", "Paris", "London", "Tokyo"}, list)
}

func TestPushRecent_CaseInsensitiveDedup(t *testing.T) {
	list := []string{"Seoul", "Tokyo", "London"}

	got := pushRecent(list, "SEOUL")
	assert.Equal(t, []string{"SEOUL", "Tokyo", "London"}, got)

	got = pushRecent(got, "london")
	assert.Equal(t, []string{"london", "SEOUL", "Tokyo"}, got)
}

func TestPushRecent_DoesNotMutateInput(t *testing.T) {
	list := []string{"Seoul", "Tokyo"}
	_ = pushRecent(list, "London")
	assert.Equal(t, []string{"Seoul", "Tokyo"}, list)
}
