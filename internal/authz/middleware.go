package authz

import (
	"net/http"
)

// RequireRole guards a handler behind a minimum role. Requests without
// a user in context, or with a role ranking below min, are rejected.
func RequireRole(min Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			user, err := ContextUser(r.Context())
			if err != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			if !user.UserRole().AtLeast(min) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}
		return fn
	}
}
