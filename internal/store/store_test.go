package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "collagio.db"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.HealthCheck(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return store
}

func TestFindOrCreateUser(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user, err := store.FindOrCreateUser(ctx, "subject-1", "google")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := authz.RoleGuest, user.Role; e != g {
		t.Errorf("user.Role: expected '%v', got '%v'", e, g)
	}

	again, err := store.FindOrCreateUser(ctx, "subject-1", "google")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := user.ID, again.ID; e != g {
		t.Errorf("again.ID: expected '%v', got '%v'", e, g)
	}

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), count; e != g {
		t.Errorf("count: expected '%v', got '%v'", e, g)
	}
}

func TestOwnedAndMemberCollages(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	owner, err := store.FindOrCreateUser(ctx, "owner", "google")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	other, err := store.FindOrCreateUser(ctx, "other", "google")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	eng := &Collage{Slug: "eng", Name: "Engineering", OwnerID: owner.ID}
	if err := store.CreateCollage(ctx, eng); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	med := &Collage{Slug: "med", Name: "Medicine", OwnerID: other.ID}
	if err := store.CreateCollage(ctx, med); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.AddCollageMember(ctx, med.ID, owner.ID); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Membership in an owned collage must not surface as "member of"
	if err := store.AddCollageMember(ctx, eng.ID, owner.ID); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	owned, err := store.ListOwnedCollages(ctx, owner.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(owned); e != g {
		t.Fatalf("len(owned): expected '%v', got '%v'", e, g)
	}

	if e, g := "eng", owned[0].Slug; e != g {
		t.Errorf("owned[0].Slug: expected '%v', got '%v'", e, g)
	}

	member, err := store.ListMemberCollages(ctx, owner.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(member); e != g {
		t.Fatalf("len(member): expected '%v', got '%v'", e, g)
	}

	if e, g := "med", member[0].Slug; e != g {
		t.Errorf("member[0].Slug: expected '%v', got '%v'", e, g)
	}
}

func TestFormSubmissions(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	owner, err := store.FindOrCreateUser(ctx, "owner", "google")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	collage := &Collage{Slug: "eng", Name: "Engineering", OwnerID: owner.ID}
	if err := store.CreateCollage(ctx, collage); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	form := &Form{
		CollageID: collage.ID,
		Title:     "Admission",
		Open:      true,
		Fields: []FormField{
			{Name: "email", Label: "Email", Kind: "email", Required: true},
			{Name: "age", Label: "Age", Kind: "number", Rule: "int(value) >= 16"},
		},
	}
	if err := store.CreateForm(ctx, form); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found, err := store.FindFormByID(ctx, form.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(found.Fields); e != g {
		t.Fatalf("len(found.Fields): expected '%v', got '%v'", e, g)
	}

	submission := &FormSubmission{
		FormID: form.ID,
		Values: map[string]string{"email": "a@b.c", "age": "18"},
	}
	if err := store.CreateFormSubmission(ctx, submission); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	submissions, err := store.ListFormSubmissions(ctx, form.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(submissions); e != g {
		t.Fatalf("len(submissions): expected '%v', got '%v'", e, g)
	}

	if e, g := "18", submissions[0].Values["age"]; e != g {
		t.Errorf("submissions[0].Values[\"age\"]: expected '%v', got '%v'", e, g)
	}
}
