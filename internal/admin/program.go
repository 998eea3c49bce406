package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) servePrograms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	programs, err := h.store.ListPrograms(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list programs", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	collages, err := h.store.ListCollages(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list collages", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := ProgramsTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "Programs"),
		Programs:         make([]ProgramTemplateData, 0, len(programs)),
		Collages:         make([]CollageTemplateData, 0, len(collages)),
	}

	for _, program := range programs {
		data.Programs = append(data.Programs, NewProgramTemplateData(program))
	}

	for _, collage := range collages {
		data.Collages = append(data.Collages, NewCollageTemplateData(collage))
	}

	h.render(w, r, "programs", data)
}

func (h *Handler) serveCreateProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collageID, err := strconv.ParseInt(r.FormValue("collage_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid collage id", http.StatusBadRequest)
		return
	}

	durationYears, _ := strconv.Atoi(r.FormValue("duration_years"))

	program := &store.Program{
		CollageID:     collageID,
		Name:          r.FormValue("name"),
		Degree:        r.FormValue("degree"),
		Description:   r.FormValue("description"),
		DurationYears: durationYears,
	}

	if program.Name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	if err := h.store.CreateProgram(ctx, program); err != nil {
		slog.ErrorContext(ctx, "could not create program", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/programs", http.StatusSeeOther)
}

func (h *Handler) serveDeleteProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid program id", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteProgram(ctx, id); err != nil {
		slog.ErrorContext(ctx, "could not delete program", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/programs", http.StatusSeeOther)
}
