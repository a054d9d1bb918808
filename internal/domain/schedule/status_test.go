package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navalhaprime/barbershop-api/internal/httperr"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("scheduled").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusBlocks(t *testing.T) {
	assert.True(t, StatusPending.Blocks())
	assert.True(t, StatusConfirmed.Blocks())
	assert.False(t, StatusCancelled.Blocks())
	assert.False(t, StatusCompleted.Blocks())
	assert.False(t, StatusNoShow.Blocks())
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusNoShow},
		{StatusConfirmed, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusCompleted, StatusConfirmed},
		{StatusCancelled, StatusPending},
		{StatusNoShow, StatusCompleted},
		{StatusConfirmed, StatusPending},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "%s -> %s", tc.from, tc.to)
	}
}
