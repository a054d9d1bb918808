package schedule

import (
	"strconv"

	"github.com/navalhaprime/barbershop-api/internal/models"
)

// SlotQuery describes a candidate booking slot.
type SlotQuery struct {
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
	ServiceIDs string // comma-joined service ids

	// Nil means the whole shop: any active appointment blocks.
	BarberID *uint

	// Set when rescheduling so an appointment does not conflict
	// with itself.
	ExcludeID uint
}

// IsSlotAvailable reports whether the candidate slot fits into the
// current appointment list without overlapping an active booking.
//
// Intervals are half-open: an appointment ending 10:00 and one
// starting 10:00 do not conflict. An appointment with no assigned
// barber reserves the whole shop, so it blocks staff-specific
// requests too.
//
// Pure and deterministic, O(n) over the list. Malformed times never
// raise: an unparseable candidate is reported available, an existing
// row with a broken time simply cannot block.
func IsSlotAvailable(q SlotQuery, existing []models.Appointment, resolve DurationResolver) bool {
	newStart, ok := ClockMinutes(q.Time)
	if !ok {
		return true
	}
	newEnd := newStart + SelectorMinutes(q.ServiceIDs, resolve)

	for i := range existing {
		a := &existing[i]

		if a.ID == q.ExcludeID || a.Date != q.Date {
			continue
		}
		if !Status(a.Status).Blocks() {
			continue
		}
		if q.BarberID != nil && a.BarberID != nil && *a.BarberID != *q.BarberID {
			continue
		}

		exStart, ok := ClockMinutes(a.Time)
		if !ok {
			continue
		}
		exEnd := exStart + SelectorMinutes(a.ServiceIDs, resolve)

		if newStart < exEnd && newEnd > exStart {
			return false
		}
	}

	return true
}

// CatalogResolver adapts a service list into a DurationResolver keyed
// by the decimal service id.
func CatalogResolver(services []models.Service) DurationResolver {
	byID := make(map[string]string, len(services))
	for _, s := range services {
		byID[strconv.FormatUint(uint64(s.ID), 10)] = s.Duration
	}

	return func(serviceID string) (string, bool) {
		raw, ok := byID[serviceID]
		return raw, ok
	}
}
