package setup

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/collagio/internal/admin"
	"github.com/bornholm/collagio/internal/api"
	"github.com/bornholm/collagio/internal/authn"
	"github.com/bornholm/collagio/internal/authn/basic"
	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/config"
	"github.com/bornholm/collagio/internal/locale"
	"github.com/bornholm/collagio/internal/portal"
	"github.com/bornholm/collagio/internal/pprof"
	"github.com/bornholm/collagio/internal/ratelimit"
	"github.com/bornholm/collagio/internal/ui"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	st, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	storage, err := NewBlobStorageFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	oauth2Handler, err := NewOAuth2HandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	onAuthenticated, err := NewOnAuthenticatedFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux.Handle("/auth/", slogMiddleware(oauth2Handler))

	mux.Handle("/media/", slogMiddleware(NewMediaHandler(storage)))

	// REST API: basic auth, per-user rate limiting

	apiAuth := authn.Chain(
		authn.WithAuthenticators(
			basic.NewAuthenticator(st),
			oauth2Handler.Authenticator(false),
		),
		authn.WithOnAuthenticated(onAuthenticated),
	)

	rateLimiter := ratelimit.New(rate.Limit(float64(conf.API.RateLimitRate)), int(conf.API.RateLimitBurst))
	rateLimiterMiddleware := rateLimiter.Middleware(func(r *http.Request) (string, error) {
		user, err := authn.ContextUser(r.Context())
		if err != nil {
			return "", errors.WithStack(err)
		}

		return user.UserProvider() + "-" + user.UserSubject(), nil
	})

	apiHandler := api.NewHandler("/api", st)

	mux.Handle("/api/docs", slogMiddleware(apiHandler))
	mux.Handle("/api/", apiAuth(slogMiddleware(rateLimiterMiddleware(apiHandler))))

	// Admin dashboard: OAuth2 with login redirect

	uiAuth := authn.Chain(
		authn.WithAuthenticators(
			oauth2Handler.Authenticator(true),
		),
		authn.WithOnAuthenticated(onAuthenticated),
	)

	sidebar := ui.NewSidebar(st, time.Duration(*conf.UI.CacheWindow))

	instance := admin.InstanceInfo{
		BaseURL:     string(conf.HTTP.BaseURL),
		Locales:     []string(conf.HTTP.Locales),
		StorageType: string(conf.Storage.Type),
		Providers:   configuredProviders(conf),
	}

	adminHandler := admin.NewHandler("/admin", st, sidebar, storage, instance)

	mux.Handle("/admin/", uiAuth(slogMiddleware(authz.RequireRole(authz.RoleAdmin)(adminHandler))))

	mux.Handle("/debug/pprof/", uiAuth(authz.RequireRole(authz.RoleOwner)(pprof.NewHandler("/debug/pprof"))))

	// Public portal

	mux.Handle("/", slogMiddleware(portal.NewHandler(st)))

	return locale.Middleware([]string(conf.HTTP.Locales))(mux), nil
}

func configuredProviders(conf *config.Config) []string {
	providers := make([]string, 0)

	if conf.Auth.Providers.Google.Key != "" {
		providers = append(providers, "google")
	}

	if conf.Auth.Providers.Github.Key != "" {
		providers = append(providers, "github")
	}

	if conf.Auth.Providers.Gitea.Key != "" {
		providers = append(providers, "gitea")
	}

	if conf.Auth.Providers.OIDC.Key != "" {
		providers = append(providers, "openid-connect")
	}

	return providers
}
