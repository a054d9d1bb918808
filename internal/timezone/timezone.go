// Package timezone resolves the shop clock. Dates and times are stored
// as local wall strings, so every parse and "now" in the codebase must
// go through the same location.
package timezone

import "time"

// DefaultTimezone is used whenever the configured zone is missing or
// unloadable.
const DefaultTimezone = "America/Sao_Paulo"

// IsValid reports whether tz names a loadable IANA zone.
func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location loads tz, falling back to DefaultTimezone rather than
// erroring. Callers never deal with a nil location.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Now is the current instant on the default shop clock.
func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// NowIn is the current instant in tz, with the usual fallback.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
