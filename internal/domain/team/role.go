package team

// ===============================
// Team Member Roles
// ===============================

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleBarber       Role = "barber"
	RoleReceptionist Role = "receptionist"
	RoleClient       Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBarber, RoleReceptionist, RoleClient:
		return true
	}
	return false
}

// CanLogin reports whether the role gets back-office credentials.
// Clients are address-book entries only.
func (r Role) CanLogin() bool {
	return r == RoleAdmin || r == RoleBarber || r == RoleReceptionist
}

// Commission applies to barbers only.
func (r Role) Commissioned() bool {
	return r == RoleBarber
}
