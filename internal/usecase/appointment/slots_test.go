package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

func openAllWeek(repo *fakeRepo) {
	for wd := 0; wd < 7; wd++ {
		repo.hours[wd] = models.BusinessHours{
			Weekday:   wd,
			OpenTime:  "09:00",
			CloseTime: "11:00",
			Active:    true,
		}
	}
}

func TestGetDaySlots(t *testing.T) {
	repo := newFakeRepo()
	openAllWeek(repo)

	uc := NewGetDaySlots(repo, testTZ, 30)

	slots, err := uc.Execute(context.Background(), futureDate, "1", nil)
	require.NoError(t, err)
	assert.Equal(t, []schedule.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
		{Start: "10:00", End: "10:30"},
		{Start: "10:30", End: "11:00"},
	}, slots)

	repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "09:30",
		ServiceIDs: "1",
		Status:     "confirmed",
	})

	slots, err = uc.Execute(context.Background(), futureDate, "1", nil)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
	for _, s := range slots {
		assert.NotEqual(t, "09:30", s.Start)
	}
}

func TestGetDaySlotsClosedDay(t *testing.T) {
	repo := newFakeRepo()

	uc := NewGetDaySlots(repo, testTZ, 30)

	// No business hours configured at all: nothing bookable.
	slots, err := uc.Execute(context.Background(), futureDate, "1", nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetDaySlotsHoursLookupError(t *testing.T) {
	repo := newFakeRepo()
	repo.hoursErr = errors.New("connection refused")

	uc := NewGetDaySlots(repo, testTZ, 30)

	// A failed lookup is not a closed day.
	_, err := uc.Execute(context.Background(), futureDate, "1", nil)
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetDaySlotsBadDate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetDaySlots(repo, testTZ, 30)

	_, err := uc.Execute(context.Background(), "12/06/2030", "1", nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestCheckSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "confirmed",
	})

	uc := NewCheckSlot(repo)

	ok, err := uc.Execute(context.Background(), schedule.SlotQuery{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
	})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.Execute(context.Background(), schedule.SlotQuery{
		Date:       futureDate,
		Time:       "10:30",
		ServiceIDs: "1",
	})
	require.NoError(t, err)
	assert.True(t, ok)
}
