package schedule

import "github.com/navalhaprime/barbershop-api/internal/models"

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySlots renders the time-slot picker for one day: a grid stepping
// through the shop's opening hours, keeping every slot where the
// requested service set fits without hitting lunch or an active
// appointment.
func DaySlots(
	q SlotQuery,
	hours models.BusinessHours,
	stepMin int,
	existing []models.Appointment,
	resolve DurationResolver,
) []TimeSlot {

	if !hours.Active {
		return []TimeSlot{}
	}

	openAt, okOpen := ClockMinutes(hours.OpenTime)
	closeAt, okClose := ClockMinutes(hours.CloseTime)
	if !okOpen || !okClose || closeAt <= openAt {
		return []TimeSlot{}
	}

	if stepMin <= 0 {
		stepMin = DefaultDurationMin
	}
	duration := SelectorMinutes(q.ServiceIDs, resolve)

	lunchStart, hasLunch := ClockMinutes(hours.LunchStart)
	lunchEnd, okLunchEnd := ClockMinutes(hours.LunchEnd)
	hasLunch = hasLunch && okLunchEnd

	slots := []TimeSlot{}
	for cur := openAt; cur+duration <= closeAt; cur += stepMin {
		slotEnd := cur + duration

		if hasLunch && cur < lunchEnd && slotEnd > lunchStart {
			continue
		}

		candidate := q
		candidate.Time = MinutesClock(cur)
		if !IsSlotAvailable(candidate, existing, resolve) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: MinutesClock(cur),
			End:   MinutesClock(slotEnd),
		})
	}

	return slots
}
