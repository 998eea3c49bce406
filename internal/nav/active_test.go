package nav

import (
	"fmt"
	"testing"
)

func TestIsActive(t *testing.T) {
	type testCase struct {
		Path     string
		Locale   string
		Route    string
		Expected bool
	}

	testCases := []testCase{
		{Path: "/en/admin/collages", Locale: "en", Route: "/admin/collages", Expected: true},
		// Trailing slashes normalize on both sides
		{Path: "/en/admin/collages/", Locale: "en", Route: "/admin/collages", Expected: true},
		{Path: "/en/admin/collages", Locale: "en", Route: "/admin/collages/", Expected: true},
		// Exact match only, no prefix matching
		{Path: "/en/admin/collages/eng", Locale: "en", Route: "/admin/collages", Expected: false},
		{Path: "/en/admin", Locale: "en", Route: "/admin/collages", Expected: false},
		// Locale mismatch
		{Path: "/fr/admin/collages", Locale: "en", Route: "/admin/collages", Expected: false},
		// Empty locale means no prefix
		{Path: "/admin/collages", Locale: "", Route: "/admin/collages", Expected: true},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.Expected, IsActive(tc.Path, tc.Locale, tc.Route); e != g {
				t.Errorf("IsActive(%q, %q, %q): expected '%v', got '%v'", tc.Path, tc.Locale, tc.Route, e, g)
			}
		})
	}
}

func TestRouteRoundTrip(t *testing.T) {
	// A link built with Route must always be active for its own item
	locales := []string{"", "en", "fr"}
	routes := []string{"/admin", "/admin/collages", "/admin/collages/eng"}

	for _, locale := range locales {
		for _, route := range routes {
			link := Route(locale, route)
			if !IsActive(link, locale, route) {
				t.Errorf("IsActive(Route(%q, %q)) should be true, link was %q", locale, route, link)
			}
		}
	}
}

func TestRouteIdempotentMatching(t *testing.T) {
	first := IsActive("/en/admin/collages", "en", "/admin/collages")
	second := IsActive("/en/admin/collages", "en", "/admin/collages")

	if first != second {
		t.Errorf("recomputing with identical inputs must yield identical results")
	}
}
