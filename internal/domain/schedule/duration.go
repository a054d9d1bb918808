package schedule

import (
	"strconv"
	"strings"
)

// DefaultDurationMin is used whenever a service duration cannot be
// parsed. Booking flow never fails on bad duration data.
const DefaultDurationMin = 30

// DurationMinutes parses a free-text service duration into minutes.
//
// "1h" style strings (an "h" with no "min") are whole hours; anything
// else uses the first run of digits as minutes. "1h30" collapses to 60
// because only the hour component is read. Kept as-is, the admin UI
// has always produced single-unit values.
func DurationMinutes(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DefaultDurationMin
	}

	if strings.Contains(s, "h") && !strings.Contains(s, "min") {
		if n, ok := firstNumber(s[:strings.Index(s, "h")]); ok {
			return n * 60
		}
		return DefaultDurationMin
	}

	if n, ok := firstNumber(s); ok {
		return n
	}
	return DefaultDurationMin
}

// firstNumber extracts the first run of digits from s.
func firstNumber(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:])
	return n, err == nil
}

// DurationResolver maps a service id to its raw duration text. The
// second return is false for unknown services, which fall back to the
// default duration.
type DurationResolver func(serviceID string) (string, bool)

// SelectorMinutes sums the parsed duration of every service id in a
// comma-joined selector. An empty or unknown selector still books the
// default duration.
func SelectorMinutes(selector string, resolve DurationResolver) int {
	total := 0
	for _, id := range strings.Split(selector, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		raw, ok := resolve(id)
		if !ok {
			total += DefaultDurationMin
			continue
		}
		total += DurationMinutes(raw)
	}

	if total == 0 {
		return DefaultDurationMin
	}
	return total
}

// ClockMinutes converts "HH:MM" to minutes since midnight.
func ClockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}

// MinutesClock renders minutes since midnight back to "HH:MM".
func MinutesClock(m int) string {
	if m < 0 {
		m = 0
	}
	h := (m / 60) % 24
	return pad2(h) + ":" + pad2(m%60)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
