package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/collagio/internal/authn"
	"github.com/bornholm/collagio/internal/authn/oauth2"
	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/config"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
)

func NewOnAuthenticatedFromConfig(ctx context.Context, conf *config.Config) (func(r *http.Request, user authn.User) (*http.Request, error), error) {
	st, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return func(r *http.Request, user authn.User) (*http.Request, error) {
		ctx := r.Context()

		storeUser, err := st.FindOrCreateUser(ctx, user.UserSubject(), user.UserProvider())
		if err != nil {
			return nil, errors.WithStack(err)
		}

		// Basic-auth API users carry their profile already
		if alreadyStored, ok := user.(*store.User); ok {
			ctx = authz.WithContextUser(ctx, alreadyStored)
			return r.WithContext(ctx), nil
		}

		if oauth2User, ok := user.(*oauth2.User); ok {
			if storeUser.Email != oauth2User.Email || storeUser.Nickname != oauth2User.Nickname {
				storeUser.Email = oauth2User.Email
				storeUser.Nickname = oauth2User.Nickname

				if err := st.UpdateUserProfile(ctx, storeUser); err != nil {
					return nil, errors.WithStack(err)
				}
			}
		}

		if role, bound := boundRole(conf, storeUser); bound && storeUser.Role != role {
			if err := st.UpdateUserRole(ctx, storeUser.ID, role); err != nil {
				return nil, errors.WithStack(err)
			}

			storeUser.Role = role
		}

		if err := st.TouchUserConnection(ctx, storeUser.ID); err != nil {
			slog.ErrorContext(ctx, "could not touch user connection", log.Error(errors.WithStack(err)))
		}

		ctx = authz.WithContextUser(ctx, storeUser)
		return r.WithContext(ctx), nil
	}, nil
}

// boundRole returns the role configured for a user, matched by email
// and identity provider.
func boundRole(conf *config.Config, user *store.User) (authz.Role, bool) {
	for _, binding := range conf.Auth.Roles {
		if string(binding.Email) == "" || string(binding.Email) != user.Email {
			continue
		}

		if string(binding.Provider) != "" && string(binding.Provider) != user.Provider {
			continue
		}

		role := authz.RoleFromString(string(binding.Role))
		if role == authz.RoleNone {
			continue
		}

		return role, true
	}

	return authz.RoleNone, false
}
