package authz

import "github.com/bornholm/collagio/internal/authn"

// User is an authenticated identity carrying an access role.
type User interface {
	authn.User
	UserRole() Role
}
