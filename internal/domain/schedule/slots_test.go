package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navalhaprime/barbershop-api/internal/models"
)

func openDay() models.BusinessHours {
	return models.BusinessHours{
		Weekday:    2,
		OpenTime:   "09:00",
		CloseTime:  "12:00",
		LunchStart: "",
		LunchEnd:   "",
		Active:     true,
	}
}

func TestDaySlotsEmptyShop(t *testing.T) {
	resolve := testCatalog()
	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "1"}

	slots := DaySlots(q, openDay(), 30, nil, resolve)

	assert.Equal(t, []TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
		{Start: "10:00", End: "10:30"},
		{Start: "10:30", End: "11:00"},
		{Start: "11:00", End: "11:30"},
		{Start: "11:30", End: "12:00"},
	}, slots)
}

func TestDaySlotsSkipsBookings(t *testing.T) {
	resolve := testCatalog()
	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "1"}

	existing := []models.Appointment{
		booked(1, "2026-09-01", "10:00", "1", "confirmed", nil),
	}

	slots := DaySlots(q, openDay(), 30, existing, resolve)

	for _, s := range slots {
		assert.NotEqual(t, "10:00", s.Start)
	}
	assert.Len(t, slots, 5)
}

func TestDaySlotsSkipsLunch(t *testing.T) {
	resolve := testCatalog()
	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "1"}

	hours := openDay()
	hours.CloseTime = "14:00"
	hours.LunchStart = "12:00"
	hours.LunchEnd = "13:00"

	slots := DaySlots(q, hours, 30, nil, resolve)

	for _, s := range slots {
		start, _ := ClockMinutes(s.Start)
		end, _ := ClockMinutes(s.End)
		overlapsLunch := start < 13*60 && end > 12*60
		assert.False(t, overlapsLunch, "slot %s-%s crosses lunch", s.Start, s.End)
	}
}

func TestDaySlotsLongServiceFitsBeforeClose(t *testing.T) {
	resolve := testCatalog()

	// 1h service in a 09:00-12:00 window: last start is 11:00.
	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "3"}

	slots := DaySlots(q, openDay(), 30, nil, resolve)

	assert.NotEmpty(t, slots)
	last := slots[len(slots)-1]
	assert.Equal(t, "11:00", last.Start)
	assert.Equal(t, "12:00", last.End)
}

func TestDaySlotsInactiveDay(t *testing.T) {
	resolve := testCatalog()
	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "1"}

	hours := openDay()
	hours.Active = false

	assert.Empty(t, DaySlots(q, hours, 30, nil, resolve))
}

func TestDaySlotsBrokenHours(t *testing.T) {
	resolve := testCatalog()
	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "1"}

	hours := openDay()
	hours.OpenTime = "18:00"
	hours.CloseTime = "09:00"

	assert.Empty(t, DaySlots(q, hours, 30, nil, resolve))
}
