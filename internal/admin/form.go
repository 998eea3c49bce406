package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

func (h *Handler) serveForms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	forms, err := h.store.ListForms(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list forms", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	collages, err := h.store.ListCollages(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list collages", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := FormsTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "Forms"),
		Forms:            make([]FormTemplateData, 0, len(forms)),
		Collages:         make([]CollageTemplateData, 0, len(collages)),
	}

	for _, form := range forms {
		data.Forms = append(data.Forms, NewFormTemplateData(form))
	}

	for _, collage := range collages {
		data.Collages = append(data.Collages, NewCollageTemplateData(collage))
	}

	h.render(w, r, "forms", data)
}

func (h *Handler) serveCreateForm(w http.ResponseWriter, r *http.Request) {
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

	form := &store.Form{
		CollageID:   collageID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Open:        true,
	}

	if form.Title == "" {
		http.Error(w, "missing title", http.StatusBadRequest)
		return
	}

	// Fields arrive as a JSON document from the form builder
	if rawFields := r.FormValue("fields"); rawFields != "" {
		if err := json.Unmarshal([]byte(rawFields), &form.Fields); err != nil {
			http.Error(w, "invalid fields", http.StatusBadRequest)
			return
		}
	}

	if err := h.store.CreateForm(ctx, form); err != nil {
		slog.ErrorContext(ctx, "could not create form", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/forms", http.StatusSeeOther)
}

func (h *Handler) serveForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	form, err := h.store.FindFormByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find form", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	submissions, err := h.store.ListFormSubmissions(ctx, form.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not list submissions", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := FormDetailTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, form.Title),
		Form:             NewFormTemplateData(form),
		Fields:           form.Fields,
		Submissions:      make([]FormSubmissionTemplateData, 0, len(submissions)),
	}

	for _, submission := range submissions {
		data.Submissions = append(data.Submissions, FormSubmissionTemplateData{
			ID:               submission.ID,
			Values:           submission.Values,
			HumanSubmittedAt: humanize.Time(submission.SubmittedAt),
		})
	}

	h.render(w, r, "form", data)
}

func (h *Handler) serveDeleteForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteForm(ctx, id); err != nil {
		slog.ErrorContext(ctx, "could not delete form", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/forms", http.StatusSeeOther)
}
