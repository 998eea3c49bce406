package setup

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/bornholm/collagio/internal/authn/oauth2"
	"github.com/bornholm/collagio/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/gitea"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/openidConnect"
	"github.com/pkg/errors"
)

func NewOAuth2HandlerFromConfig(ctx context.Context, conf *config.Config) (*oauth2.Handler, error) {
	sessionStore, err := newSessionStore(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	gothProviders, providers, err := configuredOAuth2Providers(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	goth.UseProviders(gothProviders...)
	gothic.Store = sessionStore

	handler := oauth2.NewHandler(
		sessionStore,
		oauth2.WithProviders(providers...),
		oauth2.WithPrefix("/auth"),
	)

	return handler, nil
}

func newSessionStore(conf *config.Config) (*sessions.CookieStore, error) {
	keyPairs := make([][]byte, 0, len(conf.HTTP.Session.Keys))
	for _, k := range conf.HTTP.Session.Keys {
		keyPairs = append(keyPairs, []byte(k))
	}

	// Unconfigured keys mean sessions do not survive a restart
	if len(keyPairs) == 0 {
		key, err := getRandomBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}

		keyPairs = append(keyPairs, key)
	}

	sessionStore := sessions.NewCookieStore(keyPairs...)

	sessionStore.MaxAge(int(*conf.HTTP.Session.Cookie.MaxAge))
	sessionStore.Options.Path = string(conf.HTTP.Session.Cookie.Path)
	sessionStore.Options.HttpOnly = bool(conf.HTTP.Session.Cookie.HTTPOnly)
	sessionStore.Options.Secure = bool(conf.HTTP.Session.Cookie.Secure)
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return sessionStore, nil
}

func configuredOAuth2Providers(conf *config.Config) ([]goth.Provider, []oauth2.Provider, error) {
	gothProviders := make([]goth.Provider, 0)
	providers := make([]oauth2.Provider, 0)

	register := func(p goth.Provider, label string, icon string) {
		gothProviders = append(gothProviders, p)
		providers = append(providers, oauth2.Provider{
			ID:    p.Name(),
			Label: label,
			Icon:  icon,
		})
	}

	if p := conf.Auth.Providers.Google; p.Key != "" && p.Secret != "" {
		register(google.New(
			string(p.Key),
			string(p.Secret),
			oauth2CallbackURL(conf, "google"),
			p.Scopes...,
		), "Google", "fa-google")
	}

	if p := conf.Auth.Providers.Github; p.Key != "" && p.Secret != "" {
		register(github.New(
			string(p.Key),
			string(p.Secret),
			oauth2CallbackURL(conf, "github"),
			p.Scopes...,
		), "GitHub", "fa-github")
	}

	if p := conf.Auth.Providers.Gitea; p.Key != "" && p.Secret != "" {
		register(gitea.NewCustomisedURL(
			string(p.Key),
			string(p.Secret),
			oauth2CallbackURL(conf, "gitea"),
			string(p.AuthURL),
			string(p.TokenURL),
			string(p.ProfileURL),
			p.Scopes...,
		), string(p.Label), "fa-git-alt")
	}

	if p := conf.Auth.Providers.OIDC; p.Key != "" && p.Secret != "" {
		oidcProvider, err := openidConnect.New(
			string(p.Key),
			string(p.Secret),
			oauth2CallbackURL(conf, "openid-connect"),
			string(p.DiscoveryURL),
			p.Scopes...,
		)
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not configure oidc provider")
		}

		register(oidcProvider, string(p.Label), string(p.Icon))
	}

	return gothProviders, providers, nil
}

func oauth2CallbackURL(conf *config.Config, name string) string {
	return fmt.Sprintf("%s/auth/providers/%s/callback", conf.HTTP.BaseURL, name)
}

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != n {
		return nil, errors.Errorf("could not read %d bytes", n)
	}

	return data, nil
}
