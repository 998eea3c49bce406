package api

import (
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/internal/validate"
	"github.com/pkg/errors"
)

type FormResponse struct {
	ID          int64             `json:"id"`
	CollageID   int64             `json:"collageId"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Fields      []store.FormField `json:"fields"`
	Open        bool              `json:"open"`
}

type CreateSubmissionRequest struct {
	Values map[string]string `json:"values" validate:"required"`
}

type SubmissionResponse struct {
	ID string `json:"id"`
}

func (h *Handler) serveListForms(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	forms, err := h.store.ListForms(r.Context())
	if err != nil {
		h.serveError(w, r, "could not list forms", err)
		return
	}

	response := make([]FormResponse, 0, len(forms))
	for _, form := range forms {
		response = append(response, FormResponse{
			ID:          form.ID,
			CollageID:   form.CollageID,
			Title:       form.Title,
			Description: form.Description,
			Fields:      form.Fields,
			Open:        form.Open,
		})
	}

	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) serveCreateSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleGuest) {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid form id")
		return
	}

	form, err := h.store.FindFormByID(ctx, id)
	if err != nil {
		h.serveError(w, r, "could not find form", err)
		return
	}

	if !form.Open {
		h.writeError(w, r, http.StatusConflict, "form is closed")
		return
	}

	payload := CreateSubmissionRequest{}
	if !h.readJSON(w, r, &payload) {
		return
	}

	fields := map[string]string{}

	for _, field := range form.Fields {
		value := payload.Values[field.Name]

		if field.Required && value == "" {
			fields[field.Name] = "required"
			continue
		}

		if field.Rule == "" || value == "" {
			continue
		}

		valid, err := validate.RuleFor(field.Rule).Check(value)
		if err != nil {
			h.serveError(w, r, "could not evaluate rule", errors.WithStack(err))
			return
		}

		if !valid {
			fields[field.Name] = "invalid"
		}
	}

	if len(fields) > 0 {
		h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	submission := &store.FormSubmission{
		FormID: form.ID,
		Values: payload.Values,
	}

	if err := h.store.CreateFormSubmission(ctx, submission); err != nil {
		h.serveError(w, r, "could not store submission", err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, SubmissionResponse{ID: submission.ID})
}
