package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Olympus_Mons"))
}

func TestLocationFallsBackToDefault(t *testing.T) {
	def, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	assert.Equal(t, def.String(), Location("").String())
	assert.Equal(t, def.String(), Location("nope").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestNowIn(t *testing.T) {
	now := NowIn("UTC")
	assert.Equal(t, "UTC", now.Location().String())

	// Bad zones land on the shop default instead of erroring.
	now = NowIn("nope")
	assert.Equal(t, DefaultTimezone, now.Location().String())
}
