package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
	"github.com/pkg/errors"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()

	st := store.NewStore(filepath.Join(t.TempDir(), "collagio.db"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := st.HealthCheck(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return NewHandler("/api", st), st
}

func newTestUser(t *testing.T, st *store.Store, subject string, role authz.Role) *store.User {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user, err := st.FindOrCreateUser(ctx, subject, "google")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := st.UpdateUserRole(ctx, user.ID, role); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	user, err = st.FindUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return user
}

func doRequest(handler *Handler, user *store.User, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	r := httptest.NewRequest(method, target, &buf)
	if user != nil {
		r = r.WithContext(authz.WithContextUser(r.Context(), user))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	return w
}

func TestDocsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := doRequest(handler, nil, "GET", "/api/docs", nil)

	if e, g := http.StatusOK, w.Code; e != g {
		t.Fatalf("status: expected '%v', got '%v'", e, g)
	}

	var docs DocsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &docs); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if len(docs.Endpoints) == 0 {
		t.Errorf("docs should list endpoints")
	}

	for _, endpoint := range docs.Endpoints {
		if endpoint.Method == "" || endpoint.Path == "" {
			t.Errorf("incomplete endpoint doc: %+v", endpoint)
		}
	}
}

func TestRoleGating(t *testing.T) {
	handler, st := newTestHandler(t)

	// Unauthenticated
	if e, g := http.StatusUnauthorized, doRequest(handler, nil, "GET", "/api/collages", nil).Code; e != g {
		t.Errorf("status: expected '%v', got '%v'", e, g)
	}

	// Below the required role
	guest := newTestUser(t, st, "guest", authz.RoleGuest)
	if e, g := http.StatusForbidden, doRequest(handler, guest, "GET", "/api/collages", nil).Code; e != g {
		t.Errorf("status: expected '%v', got '%v'", e, g)
	}

	// Admin passes
	admin := newTestUser(t, st, "admin", authz.RoleAdmin)
	if e, g := http.StatusOK, doRequest(handler, admin, "GET", "/api/collages", nil).Code; e != g {
		t.Errorf("status: expected '%v', got '%v'", e, g)
	}

	// Delete requires superadmin
	if e, g := http.StatusForbidden, doRequest(handler, admin, "DELETE", "/api/collages/eng", nil).Code; e != g {
		t.Errorf("status: expected '%v', got '%v'", e, g)
	}
}

func TestCreateCollage(t *testing.T) {
	handler, st := newTestHandler(t)

	admin := newTestUser(t, st, "admin", authz.RoleAdmin)

	w := doRequest(handler, admin, "POST", "/api/collages", CreateCollageRequest{
		Slug: "eng",
		Name: "Engineering",
	})

	if e, g := http.StatusCreated, w.Code; e != g {
		t.Fatalf("status: expected '%v', got '%v', body %s", e, g, w.Body.String())
	}

	var created CollageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := admin.ID, created.OwnerID; e != g {
		t.Errorf("created.OwnerID: expected '%v', got '%v'", e, g)
	}

	// Invalid payload is rejected with field errors
	w = doRequest(handler, admin, "POST", "/api/collages", CreateCollageRequest{Slug: "BAD SLUG"})

	if e, g := http.StatusUnprocessableEntity, w.Code; e != g {
		t.Fatalf("status: expected '%v', got '%v'", e, g)
	}

	var response errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if len(response.Fields) == 0 {
		t.Errorf("expected field errors, got %+v", response)
	}
}

func TestCreateSubmission(t *testing.T) {
	handler, st := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	admin := newTestUser(t, st, "admin", authz.RoleAdmin)
	guest := newTestUser(t, st, "guest", authz.RoleGuest)

	collage := &store.Collage{Slug: "eng", Name: "Engineering", OwnerID: admin.ID}
	if err := st.CreateCollage(ctx, collage); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	form := &store.Form{
		CollageID: collage.ID,
		Title:     "Admissions",
		Open:      true,
		Fields: []store.FormField{
			{Name: "email", Label: "Email", Kind: "text", Required: true, Rule: `value contains "@"`},
		},
	}
	if err := st.CreateForm(ctx, form); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// A failing rule yields a field error
	w := doRequest(handler, guest, "POST", "/api/forms/1/submissions", CreateSubmissionRequest{
		Values: map[string]string{"email": "nope"},
	})

	if e, g := http.StatusUnprocessableEntity, w.Code; e != g {
		t.Fatalf("status: expected '%v', got '%v', body %s", e, g, w.Body.String())
	}

	// A valid submission is stored
	w = doRequest(handler, guest, "POST", "/api/forms/1/submissions", CreateSubmissionRequest{
		Values: map[string]string{"email": "someone@example.net"},
	})

	if e, g := http.StatusCreated, w.Code; e != g {
		t.Fatalf("status: expected '%v', got '%v', body %s", e, g, w.Body.String())
	}

	submissions, err := st.ListFormSubmissions(ctx, form.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(submissions); e != g {
		t.Fatalf("len(submissions): expected '%v', got '%v'", e, g)
	}
}
