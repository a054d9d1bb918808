package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511988887777", NormalizePhone("+55 (11) 98888-7777"))
	assert.Equal(t, "11988887777", NormalizePhone("11 98888 7777"))
	assert.Equal(t, "", NormalizePhone("abc"))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("11988887777"))
	assert.True(t, IsPhoneValid("5511988887777"))
	assert.True(t, IsPhoneValid("12345678"))

	assert.False(t, IsPhoneValid("1234567"))
	assert.False(t, IsPhoneValid("1234567890123456"))
	assert.False(t, IsPhoneValid(""))
}
