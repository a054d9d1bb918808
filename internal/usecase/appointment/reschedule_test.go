package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

func strPtr(s string) *string { return &s }

func newRescheduleUC(repo *fakeRepo) *RescheduleAppointment {
	return NewRescheduleAppointment(repo, nil, nil, testTZ)
}

func TestRescheduleMove(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		ClientName: "João",
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "pending",
	})

	uc := newRescheduleUC(repo)

	moved, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: ap.ID,
		Time:          strPtr("11:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00", moved.Time)
	assert.Equal(t, futureDate, moved.Date)
}

func TestRescheduleWithinOwnWindow(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		ClientName: "João",
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "2", // 45 min
		Status:     "confirmed",
	})

	uc := newRescheduleUC(repo)

	// Shifting 15 minutes overlaps the old window; only the exclusion
	// of the appointment itself makes this legal.
	moved, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: ap.ID,
		Time:          strPtr("10:15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:15", moved.Time)
}

func TestRescheduleConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "confirmed",
	})
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "14:00",
		ServiceIDs: "1",
		Status:     "pending",
	})

	uc := newRescheduleUC(repo)

	_, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: ap.ID,
		Time:          strPtr("10:15"),
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// Unchanged on failure.
	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "14:00", stored.Time)
}

func TestRescheduleGuardedWriteConflict(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "pending",
	})
	repo.guardErr = httperr.ErrBusiness("time_conflict")

	uc := newRescheduleUC(repo)

	_, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: ap.ID,
		Time:          strPtr("11:00"),
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "10:00", stored.Time)
}

func TestRescheduleTerminalStatus(t *testing.T) {
	repo := newFakeRepo()

	for _, status := range []string{"cancelled", "completed", "noshow"} {
		ap := repo.put(models.Appointment{
			Date:       futureDate,
			Time:       "10:00",
			ServiceIDs: "1",
			Status:     status,
		})

		uc := newRescheduleUC(repo)
		_, err := uc.Execute(context.Background(), RescheduleInput{
			AppointmentID: ap.ID,
			Time:          strPtr("11:00"),
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", status)
	}
}

func TestRescheduleBarberChanges(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "pending",
	})

	uc := newRescheduleUC(repo)

	moved, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: ap.ID,
		BarberID:      uintPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rafael", moved.BarberName)

	moved, err = uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: ap.ID,
		ClearBarber:   true,
	})
	require.NoError(t, err)
	assert.Nil(t, moved.BarberID)
	assert.Empty(t, moved.BarberName)
}

func TestRescheduleServiceSwapReprices(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:        futureDate,
		Time:        "10:00",
		ServiceIDs:  "1",
		ServiceName: "Corte",
		Price:       40,
		Status:      "pending",
	})

	uc := newRescheduleUC(repo)

	moved, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: ap.ID,
		ServiceIDs:    strPtr("1,2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Corte + Barba", moved.ServiceName)
	assert.Equal(t, 65.0, moved.Price)
}
