package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicy_Default(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)

	assert.True(t, p.IsDayOff(time.Thursday))
	assert.False(t, p.IsDayOff(time.Sunday))
	assert.Equal(t, "Folga", p.DayOff.Label)

	cases := []struct {
		kind    string
		weekly  string
		monthly string
		shift   string
	}{
		{"8", "44", "220", "08:00 - 17:00"},
		{"6", "36", "180", "06:00 - 14:20"},
		{"4", "20", "100", "04:00 - 08:00"},
		{"unknown", "20", "100", "-"},
	}
	for _, c := range cases {
		sp := p.Schedule(c.kind, 0)
		assert.Equal(t, c.weekly, sp.WeeklyHours.String(), c.kind)
		assert.Equal(t, c.monthly, sp.MonthlyHours.String(), c.kind)
		assert.Equal(t, c.shift, sp.Shift, c.kind)
	}
}

func TestPolicy_CustomHours(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)

	sp := p.Schedule("custom", 7)
	assert.Equal(t, "38.5", sp.WeeklyHours.String())
	assert.Equal(t, "192.5", sp.MonthlyHours.String())

	// 7.3 * 5.5 is 40.15 exactly, not 40.149999...
	assert.Equal(t, "40.15", p.Schedule("custom", 7.3).WeeklyHours.String())

	// the override must not leak into the shared map
	assert.Equal(t, "20", p.Schedule("custom", 0).WeeklyHours.String())
}

func TestLoadPolicy_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
day_off:
  weekdays: [Sunday, saturday]
schedules:
  "8": {weekly_hours: 40, monthly_hours: 200, shift: "09:00 - 18:00"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.True(t, p.IsDayOff(time.Sunday))
	assert.True(t, p.IsDayOff(time.Saturday))
	assert.False(t, p.IsDayOff(time.Thursday))
	assert.Equal(t, "Folga", p.DayOff.Label)
	assert.Equal(t, "09:00 - 18:00", p.Schedule("8", 0).Shift)
}

func TestParsePolicy_Invalid(t *testing.T) {
	_, err := ParsePolicy([]byte("day_off: {weekdays: [funday]}\nschedules: {\"8\": {}}"))
	assert.Error(t, err)

	_, err = ParsePolicy([]byte("day_off: {weekdays: []}"))
	assert.Error(t, err)

	_, err = ParsePolicy([]byte(":::"))
	assert.Error(t, err)
}
