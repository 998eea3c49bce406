package nav

import "strings"

// Route builds the locale-prefixed link target for a route. An empty
// locale yields the bare route.
func Route(locale, route string) string {
	if locale == "" {
		return normalizePath(route)
	}

	return normalizePath("/" + locale + route)
}

// IsActive reports whether the current path corresponds to the
// locale-prefixed route. Comparison is exact after trailing-slash
// normalization of both sides; no prefix matching.
func IsActive(currentPath, locale, route string) bool {
	return normalizePath(currentPath) == Route(locale, route)
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	return path
}
