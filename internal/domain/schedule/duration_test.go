package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"plain minutes", "30 min", 30},
		{"minutes no space", "45min", 45},
		{"bare number", "20", 20},
		{"whole hour", "1h", 60},
		{"two hours", "2h", 120},
		{"hour with spaces", " 1 h ", 60},
		{"hour and minutes collapses to hour", "1h30", 60},
		{"hora word", "1 hora", 60},
		{"empty", "", DefaultDurationMin},
		{"garbage", "rápido", DefaultDurationMin},
		{"h with no digits", "h", DefaultDurationMin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DurationMinutes(tc.raw))
		})
	}
}

func TestSelectorMinutes(t *testing.T) {
	resolve := func(id string) (string, bool) {
		switch id {
		case "1":
			return "30 min", true
		case "2":
			return "45 min", true
		case "3":
			return "1h", true
		}
		return "", false
	}

	assert.Equal(t, 30, SelectorMinutes("1", resolve))
	assert.Equal(t, 75, SelectorMinutes("1,2", resolve))
	assert.Equal(t, 135, SelectorMinutes("1,2,3", resolve))

	// Whitespace around ids is tolerated.
	assert.Equal(t, 75, SelectorMinutes(" 1 , 2 ", resolve))

	// Unknown services book the default duration instead of failing.
	assert.Equal(t, DefaultDurationMin, SelectorMinutes("99", resolve))
	assert.Equal(t, 30+DefaultDurationMin, SelectorMinutes("1,99", resolve))

	// Empty selector still reserves a default window.
	assert.Equal(t, DefaultDurationMin, SelectorMinutes("", resolve))
	assert.Equal(t, DefaultDurationMin, SelectorMinutes(" , ", resolve))
}

func TestClockMinutes(t *testing.T) {
	m, ok := ClockMinutes("09:30")
	assert.True(t, ok)
	assert.Equal(t, 570, m)

	m, ok = ClockMinutes("00:00")
	assert.True(t, ok)
	assert.Equal(t, 0, m)

	m, ok = ClockMinutes("23:59")
	assert.True(t, ok)
	assert.Equal(t, 1439, m)

	for _, bad := range []string{"", "930", "24:00", "12:60", "ab:cd", "12"} {
		_, ok := ClockMinutes(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestMinutesClock(t *testing.T) {
	assert.Equal(t, "09:30", MinutesClock(570))
	assert.Equal(t, "00:00", MinutesClock(0))
	assert.Equal(t, "15:15", MinutesClock(915))
	assert.Equal(t, "00:00", MinutesClock(-10))
}
