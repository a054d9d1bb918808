package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks the shape of the address and then whether
// its domain resolves, MX first and A/AAAA as a fallback for domains
// that receive mail on the apex record. DNS here is best effort, a
// resolving domain does not guarantee a deliverable mailbox.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
