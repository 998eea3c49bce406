package locale

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware(t *testing.T) {
	type testCase struct {
		Path           string
		ExpectedLocale string
		ExpectedPath   string
	}

	testCases := []testCase{
		{Path: "/en/admin/collages", ExpectedLocale: "en", ExpectedPath: "/admin/collages"},
		{Path: "/fr/admin", ExpectedLocale: "fr", ExpectedPath: "/admin"},
		{Path: "/admin", ExpectedLocale: "en", ExpectedPath: "/admin"},
		{Path: "/en", ExpectedLocale: "en", ExpectedPath: "/"},
		// A non-locale segment stays untouched
		{Path: "/enrollment", ExpectedLocale: "en", ExpectedPath: "/enrollment"},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			var gotLocale, gotPath string

			handler := Middleware([]string{"en", "fr"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotLocale = ContextLocale(r.Context())
				gotPath = r.URL.Path
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tc.Path, nil))

			if e, g := tc.ExpectedLocale, gotLocale; e != g {
				t.Errorf("locale: expected '%v', got '%v'", e, g)
			}

			if e, g := tc.ExpectedPath, gotPath; e != g {
				t.Errorf("path: expected '%v', got '%v'", e, g)
			}
		})
	}
}
