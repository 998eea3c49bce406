package locale

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const contextKeyLocale contextKey = "locale"

// ContextLocale returns the locale negotiated for the request, empty
// when none applies.
func ContextLocale(ctx context.Context) string {
	locale, ok := ctx.Value(contextKeyLocale).(string)
	if !ok {
		return ""
	}

	return locale
}

func withContextLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, contextKeyLocale, locale)
}

// Middleware strips a recognized locale prefix from the request path
// and exposes it through the context. Paths without a locale prefix
// pass through with the default locale.
func Middleware(locales []string) func(next http.Handler) http.Handler {
	defaultLocale := ""
	if len(locales) > 0 {
		defaultLocale = locales[0]
	}

	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			requestLocale := defaultLocale

			for _, l := range locales {
				prefix := "/" + l
				if r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/") {
					requestLocale = l

					r2 := r.Clone(ctx)
					r2.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
					if r2.URL.Path == "" {
						r2.URL.Path = "/"
					}

					r = r2

					break
				}
			}

			next.ServeHTTP(w, r.WithContext(withContextLocale(ctx, requestLocale)))
		}
		return fn
	}
}
