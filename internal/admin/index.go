package admin

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/nav"
	"github.com/bornholm/collagio/internal/ui"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
)

// serveIndex handles the dashboard.
func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	data := DashboardTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "Dashboard"),
	}

	counts := []struct {
		name  string
		count func() (int64, error)
		dest  *int
	}{
		{"collages", func() (int64, error) { return h.store.CountCollages(ctx) }, &data.CollageCount},
		{"users", func() (int64, error) { return h.store.CountUsers(ctx) }, &data.UserCount},
		{"programs", func() (int64, error) { return h.store.CountPrograms(ctx) }, &data.ProgramCount},
		{"forms", func() (int64, error) { return h.store.CountForms(ctx) }, &data.FormCount},
		{"gallery events", func() (int64, error) { return h.store.CountGalleryEvents(ctx) }, &data.GalleryEventCount},
	}

	for _, c := range counts {
		total, err := c.count()
		if err != nil {
			slog.ErrorContext(ctx, "could not count "+c.name, log.Error(errors.WithStack(err)))
			continue
		}

		*c.dest = int(total)
	}

	h.render(w, r, "index", data)
}

// serveSidebarView persists the sidebar view mode.
func (h *Handler) serveSidebarView(w http.ResponseWriter, r *http.Request) {
	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	ui.WriteViewMode(w, nav.ViewModeFromString(r.FormValue("mode")))

	h.redirectBack(w, r)
}

// serveSidebarToggle flips the expanded state of one navigation item.
func (h *Handler) serveSidebarToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	key := nav.Key(r.PathValue("key"))

	state := ui.OpenStateFromRequest(r)
	state[key] = !state[key]

	if err := ui.WriteOpenState(w, state); err != nil {
		slog.ErrorContext(ctx, "could not write sidebar state", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.redirectBack(w, r)
}

func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = h.prefix + "/"
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
