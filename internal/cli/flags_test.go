package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockValue(t *testing.T) {
	var v clockValue
	require.NoError(t, v.Set("9:05"))
	assert.Equal(t, "09:05", v.String())

	day := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 7, 9, 5, 0, 0, time.UTC), v.on(day))

	for _, bad := range []string{"9", "9:5", "24:00", "12:60", "ab:cd", "-1:00"} {
		assert.Error(t, new(clockValue).Set(bad), bad)
	}
}

func TestDateValue(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)

	var v dateValue
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, loc), v.resolve(now))

	require.NoError(t, v.Set("7/3/2026"))
	assert.Equal(t, "7/3/2026", v.String())
	assert.Equal(t, time.Date(2026, time.March, 7, 0, 0, 0, 0, loc), v.resolve(now))

	assert.Error(t, new(dateValue).Set("2026-03-07"))
	assert.Error(t, new(dateValue).Set("31/2/2026"))
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, validateDescription("Reading"))
	assert.Error(t, validateDescription("two\nlines"))
	assert.NoError(t, validateDescription(strings.Repeat("é", maxDescriptionLen)))
	assert.Error(t, validateDescription(strings.Repeat("a", maxDescriptionLen+1)))
}
