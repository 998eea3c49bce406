package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/nav"
	"github.com/bornholm/collagio/internal/store"
	"github.com/pkg/errors"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st := store.NewStore(filepath.Join(t.TempDir(), "collagio.db"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := st.HealthCheck(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return st
}

func TestSidebarTemplateData(t *testing.T) {
	st := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	owner, err := st.FindOrCreateUser(ctx, "owner-subject", "google")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := st.UpdateUserRole(ctx, owner.ID, authz.RoleAdmin); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	owner, err = st.FindUserByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	collage := &store.Collage{
		Slug:    "eng",
		Name:    "Engineering",
		OwnerID: owner.ID,
	}
	if err := st.CreateCollage(ctx, collage); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	sidebar := NewSidebar(st, 5*time.Minute)

	r := httptest.NewRequest("GET", "/admin/collages", nil)

	data := sidebar.TemplateData(r, owner, "en")

	var collagesItem *SidebarItemTemplateData
	for _, section := range data.Sections {
		for idx := range section.Items {
			if section.Items[idx].Key == nav.KeyCollages {
				collagesItem = &section.Items[idx]
			}

			if section.Items[idx].Key == nav.KeyUsers {
				t.Errorf("admin should not see the users item")
			}
		}
	}

	if collagesItem == nil {
		t.Fatalf("missing collages item")
	}

	if e, g := "1", collagesItem.Badge; e != g {
		t.Errorf("collagesItem.Badge: expected '%v', got '%v'", e, g)
	}

	if e, g := "Your colleges and memberships", collagesItem.Description; e != g {
		t.Errorf("collagesItem.Description: expected '%v', got '%v'", e, g)
	}

	if !collagesItem.Active {
		t.Errorf("collagesItem.Active: expected true for the current path")
	}

	if e, g := 1, len(collagesItem.SubItems); e != g {
		t.Fatalf("len(collagesItem.SubItems): expected '%v', got '%v'", e, g)
	}

	if e, g := "/en/admin/collages/eng", collagesItem.SubItems[0].Link; e != g {
		t.Errorf("collagesItem.SubItems[0].Link: expected '%v', got '%v'", e, g)
	}

	if e, g := nav.RenderExpandableParent, collagesItem.RenderMode; e != g {
		t.Errorf("collagesItem.RenderMode: expected '%v', got '%v'", e, g)
	}
}

func TestSidebarCollapsedViewMode(t *testing.T) {
	st := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user, err := st.FindOrCreateUser(ctx, "admin-subject", "github")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := st.UpdateUserRole(ctx, user.ID, authz.RoleOwner); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	user, err = st.FindUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	sidebar := NewSidebar(st, 5*time.Minute)

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieSidebarView, Value: "collapsed"})

	data := sidebar.TemplateData(r, user, "en")

	for _, section := range data.Sections {
		for _, item := range section.Items {
			if e, g := nav.RenderCollapsedIcon, item.RenderMode; e != g {
				t.Errorf("item %q RenderMode: expected '%v', got '%v'", item.Key, e, g)
			}
		}
	}
}

func TestOpenStateRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()

	state := map[nav.Key]bool{
		nav.KeyCollages: true,
		nav.KeyForms:    false,
	}

	if err := WriteOpenState(w, state); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	r := httptest.NewRequest("GET", "/", nil)
	for _, cookie := range w.Result().Cookies() {
		r.AddCookie(cookie)
	}

	retrieved := OpenStateFromRequest(r)

	if !retrieved[nav.KeyCollages] {
		t.Errorf("retrieved[collages]: expected true")
	}

	if retrieved[nav.KeyForms] {
		t.Errorf("retrieved[forms]: expected false")
	}
}

func TestOpenStateMalformedCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	// Valid base64, invalid JSON payload
	r.AddCookie(&http.Cookie{Name: CookieSidebarOpen, Value: "bm90anNvbg"})

	state := OpenStateFromRequest(r)

	if len(state) != 0 {
		t.Errorf("malformed cookie should yield an empty state")
	}
}
