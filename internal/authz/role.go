package authz

// Role is the access level attached to a user. The zero value RoleNone
// means "no known role" and never matches a role requirement.
type Role string

const (
	RoleNone       Role = ""
	RoleGuest      Role = "GUEST"
	RoleAdmin      Role = "ADMIN"
	RoleSuperadmin Role = "SUPERADMIN"
	RoleOwner      Role = "OWNER"
)

var roleRanks = map[Role]int{
	RoleGuest:      1,
	RoleAdmin:      2,
	RoleSuperadmin: 3,
	RoleOwner:      4,
}

// RoleFromString narrows arbitrary input to a known role. Unknown input
// maps to RoleNone rather than being carried through as-is.
func RoleFromString(raw string) Role {
	role := Role(raw)
	if _, ok := roleRanks[role]; !ok {
		return RoleNone
	}

	return role
}

// AtLeast reports whether the role ranks at or above min. RoleNone ranks
// below everything, including RoleGuest.
func (r Role) AtLeast(min Role) bool {
	rank, ok := roleRanks[r]
	if !ok {
		return false
	}

	minRank, ok := roleRanks[min]
	if !ok {
		return false
	}

	return rank >= minRank
}

func (r Role) String() string {
	if r == RoleNone {
		return "NONE"
	}

	return string(r)
}
