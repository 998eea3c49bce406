package authz

import (
	"context"

	"github.com/pkg/errors"
)

type contextKey string

const contextKeyUser contextKey = "authzUser"

func ContextUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(contextKeyUser).(User)
	if !ok {
		return nil, errors.New("no user in context")
	}

	return user, nil
}

func WithContextUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// ContextRole returns the current user's role, RoleNone when the
// context carries no user.
func ContextRole(ctx context.Context) Role {
	user, err := ContextUser(ctx)
	if err != nil {
		return RoleNone
	}

	return user.UserRole()
}
