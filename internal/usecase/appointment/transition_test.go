package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

func newTransitionUC(repo *fakeRepo) *TransitionAppointment {
	return NewTransitionAppointment(repo, nil, nil, nil, testTZ)
}

func TestTransitionConfirm(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "pending",
	})

	uc := newTransitionUC(repo)

	out, err := uc.Execute(context.Background(), TransitionInput{
		AppointmentID: ap.ID,
		To:            schedule.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", out.Status)
}

func TestTransitionCancelStampsTime(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "confirmed",
	})

	uc := newTransitionUC(repo)

	out, err := uc.Execute(context.Background(), TransitionInput{
		AppointmentID: ap.ID,
		To:            schedule.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", out.Status)
	require.NotNil(t, out.CancelledAt)
}

func TestTransitionCompleteWithCheckout(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Price:      40,
		Status:     "confirmed",
	})

	uc := newTransitionUC(repo)

	out, err := uc.Execute(context.Background(), TransitionInput{
		AppointmentID: ap.ID,
		To:            schedule.StatusCompleted,
		Products: []ConsumedProduct{
			{ProductID: 10, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", out.Status)
	require.NotNil(t, out.CompletedAt)

	// Service price plus 2x R$35 of product.
	assert.Equal(t, 110.0, out.Price)

	require.Len(t, repo.finalized, 1)
	assert.Equal(t, uint(10), repo.finalized[0].ProductID)
	assert.Equal(t, 2, repo.finalized[0].Quantity)
	assert.Equal(t, 35.0, repo.finalized[0].Price)
}

func TestTransitionCompleteUnknownProduct(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "confirmed",
	})

	uc := newTransitionUC(repo)

	_, err := uc.Execute(context.Background(), TransitionInput{
		AppointmentID: ap.ID,
		To:            schedule.StatusCompleted,
		Products: []ConsumedProduct{
			{ProductID: 404, Quantity: 1},
		},
	})
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "confirmed", stored.Status)
}

func TestTransitionInvalidMoves(t *testing.T) {
	repo := newFakeRepo()
	uc := newTransitionUC(repo)

	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "pending",
	})

	// pending cannot jump straight to completed.
	_, err := uc.Execute(context.Background(), TransitionInput{
		AppointmentID: ap.ID,
		To:            schedule.StatusCompleted,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	// Unknown status string.
	_, err = uc.Execute(context.Background(), TransitionInput{
		AppointmentID: ap.ID,
		To:            schedule.Status("done"),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	// Missing appointment.
	_, err = uc.Execute(context.Background(), TransitionInput{
		AppointmentID: 999,
		To:            schedule.StatusConfirmed,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestTransitionInvalidQuantity(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.put(models.Appointment{
		Date:       futureDate,
		Time:       "10:00",
		ServiceIDs: "1",
		Status:     "confirmed",
	})

	uc := newTransitionUC(repo)

	_, err := uc.Execute(context.Background(), TransitionInput{
		AppointmentID: ap.ID,
		To:            schedule.StatusCompleted,
		Products: []ConsumedProduct{
			{ProductID: 10, Quantity: 0},
		},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}
