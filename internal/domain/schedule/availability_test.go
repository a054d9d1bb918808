package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navalhaprime/barbershop-api/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func testCatalog() DurationResolver {
	return CatalogResolver([]models.Service{
		{ID: 1, Name: "Corte", Duration: "30 min"},
		{ID: 2, Name: "Barba", Duration: "45 min"},
		{ID: 3, Name: "Luzes", Duration: "1h"},
	})
}

func booked(id uint, date, hhmm, serviceIDs, status string, barberID *uint) models.Appointment {
	return models.Appointment{
		ID:         id,
		Date:       date,
		Time:       hhmm,
		ServiceIDs: serviceIDs,
		Status:     status,
		BarberID:   barberID,
	}
}

func TestIsSlotAvailableOverlap(t *testing.T) {
	resolve := testCatalog()

	// One 30-minute booking at 10:00.
	existing := []models.Appointment{
		booked(1, "2026-09-01", "10:00", "1", "confirmed", nil),
	}

	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "1"}

	cases := []struct {
		time string
		want bool
	}{
		{"09:00", true},
		{"09:30", true},  // ends exactly at 10:00, half-open
		{"09:45", false}, // runs into the booking
		{"10:00", false}, // identical slot
		{"10:15", false}, // starts inside
		{"10:30", true},  // starts exactly when the booking ends
		{"11:00", true},
	}

	for _, tc := range cases {
		q.Time = tc.time
		assert.Equal(t, tc.want, IsSlotAvailable(q, existing, resolve), "time %s", tc.time)
	}
}

func TestIsSlotAvailableMultiService(t *testing.T) {
	resolve := testCatalog()

	// 30 + 45 minutes booked at 14:00 occupies [14:00, 15:15).
	existing := []models.Appointment{
		booked(1, "2026-09-01", "14:00", "1,2", "pending", nil),
	}

	q := SlotQuery{Date: "2026-09-01", ServiceIDs: "1"}

	q.Time = "15:00"
	assert.False(t, IsSlotAvailable(q, existing, resolve))

	q.Time = "15:15"
	assert.True(t, IsSlotAvailable(q, existing, resolve))

	q.Time = "13:45"
	assert.False(t, IsSlotAvailable(q, existing, resolve))

	q.Time = "13:30"
	assert.True(t, IsSlotAvailable(q, existing, resolve))
}

func TestIsSlotAvailableTerminalStatusesNeverBlock(t *testing.T) {
	resolve := testCatalog()

	for _, status := range []string{"cancelled", "completed", "noshow"} {
		existing := []models.Appointment{
			booked(1, "2026-09-01", "10:00", "1", status, nil),
		}
		q := SlotQuery{Date: "2026-09-01", Time: "10:00", ServiceIDs: "1"}
		assert.True(t, IsSlotAvailable(q, existing, resolve), "status %s", status)
	}
}

func TestIsSlotAvailableOtherDate(t *testing.T) {
	resolve := testCatalog()

	existing := []models.Appointment{
		booked(1, "2026-09-01", "10:00", "1", "confirmed", nil),
	}

	q := SlotQuery{Date: "2026-09-02", Time: "10:00", ServiceIDs: "1"}
	assert.True(t, IsSlotAvailable(q, existing, resolve))
}

func TestIsSlotAvailableExcludeSelf(t *testing.T) {
	resolve := testCatalog()

	existing := []models.Appointment{
		booked(7, "2026-09-01", "10:00", "1", "confirmed", nil),
	}

	// Rescheduling appointment 7 inside its own window is fine.
	q := SlotQuery{Date: "2026-09-01", Time: "10:15", ServiceIDs: "1", ExcludeID: 7}
	assert.True(t, IsSlotAvailable(q, existing, resolve))

	q.ExcludeID = 0
	assert.False(t, IsSlotAvailable(q, existing, resolve))
}

func TestIsSlotAvailableBarberScoping(t *testing.T) {
	resolve := testCatalog()

	existing := []models.Appointment{
		booked(1, "2026-09-01", "10:00", "1", "confirmed", uintPtr(5)),
	}

	// Another barber is free at the same time.
	q := SlotQuery{Date: "2026-09-01", Time: "10:00", ServiceIDs: "1", BarberID: uintPtr(6)}
	assert.True(t, IsSlotAvailable(q, existing, resolve))

	// The booked barber is not.
	q.BarberID = uintPtr(5)
	assert.False(t, IsSlotAvailable(q, existing, resolve))

	// A shop-wide request sees any active booking.
	q.BarberID = nil
	assert.False(t, IsSlotAvailable(q, existing, resolve))
}

func TestIsSlotAvailableUnassignedBlocksEveryone(t *testing.T) {
	resolve := testCatalog()

	// Booking with no barber reserves the whole shop.
	existing := []models.Appointment{
		booked(1, "2026-09-01", "10:00", "1", "pending", nil),
	}

	q := SlotQuery{Date: "2026-09-01", Time: "10:00", ServiceIDs: "1", BarberID: uintPtr(5)}
	assert.False(t, IsSlotAvailable(q, existing, resolve))
}

func TestIsSlotAvailableMalformedTimes(t *testing.T) {
	resolve := testCatalog()

	// Unparseable candidate time reports available.
	q := SlotQuery{Date: "2026-09-01", Time: "25:99", ServiceIDs: "1"}
	assert.True(t, IsSlotAvailable(q, nil, resolve))

	// Existing row with a broken time cannot block.
	existing := []models.Appointment{
		booked(1, "2026-09-01", "bogus", "1", "confirmed", nil),
	}
	q.Time = "10:00"
	assert.True(t, IsSlotAvailable(q, existing, resolve))
}
