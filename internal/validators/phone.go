package validators

import "strings"

// NormalizePhone strips everything but digits, the format wa.me and
// the SMS gateway expect.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid accepts national and E.164-ish numbers: 8 to 15 digits.
func IsPhoneValid(phone string) bool {
	digits := NormalizePhone(phone)
	return len(digits) >= 8 && len(digits) <= 15
}
