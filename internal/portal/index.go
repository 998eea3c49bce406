package portal

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/internal/locale"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/internal/ui"
	"github.com/bornholm/collagio/internal/validate"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
)

// serveHome lists published collages.
func (h *Handler) serveHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	collages, err := h.store.ListPublishedCollages(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list collages", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := HomeTemplateData{
		HeadTemplateData: ui.HeadTemplateData{PageTitle: "Home"},
		Locale:           locale.ContextLocale(ctx),
		Collages:         make([]CollageCardTemplateData, 0, len(collages)),
	}

	for _, collage := range collages {
		data.Collages = append(data.Collages, newCollageCard(collage))
	}

	h.render(w, r, "home", data)
}

// serveCollage renders the public page of a published collage.
func (h *Handler) serveCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	collage, err := h.findPublishedCollage(w, r)
	if collage == nil {
		if err != nil {
			slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		}

		return
	}

	data, err := h.collagePageData(r, collage)
	if err != nil {
		slog.ErrorContext(ctx, "could not build collage page", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.render(w, r, "collage", data)
}

// serveSubmitForm validates and stores a public form submission.
func (h *Handler) serveSubmitForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	collage, err := h.findPublishedCollage(w, r)
	if collage == nil {
		if err != nil {
			slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		}

		return
	}

	formID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	form, err := h.store.FindFormByID(ctx, formID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find form", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if form.CollageID != collage.ID || !form.Open {
		http.NotFound(w, r)
		return
	}

	values := map[string]string{}
	fieldErrors := map[string]string{}

	for _, field := range form.Fields {
		value := r.FormValue(field.Name)
		values[field.Name] = value

		if field.Required && value == "" {
			fieldErrors[field.Name] = "This field is required"
			continue
		}

		if field.Rule == "" || value == "" {
			continue
		}

		valid, err := validate.RuleFor(field.Rule).Check(value)
		if err != nil {
			slog.ErrorContext(ctx, "could not evaluate rule", log.Error(errors.WithStack(err)), slog.String("field", field.Name))
			fieldErrors[field.Name] = "This value could not be validated"
			continue
		}

		if !valid {
			fieldErrors[field.Name] = "This value is invalid"
		}
	}

	if len(fieldErrors) == 0 {
		submission := &store.FormSubmission{
			FormID: form.ID,
			Values: values,
		}

		if err := h.store.CreateFormSubmission(ctx, submission); err != nil {
			slog.ErrorContext(ctx, "could not store submission", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	data, err := h.collagePageData(r, collage)
	if err != nil {
		slog.ErrorContext(ctx, "could not build collage page", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	for idx := range data.Forms {
		if data.Forms[idx].ID != form.ID {
			continue
		}

		if len(fieldErrors) > 0 {
			data.Forms[idx].Errors = fieldErrors
			data.Forms[idx].Values = values
		} else {
			data.Forms[idx].Sent = true
		}
	}

	h.render(w, r, "collage", data)
}

func (h *Handler) findPublishedCollage(w http.ResponseWriter, r *http.Request) (*store.Collage, error) {
	collage, err := h.store.FindCollageBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return nil, nil
		}

		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, errors.WithStack(err)
	}

	if !collage.Published {
		http.NotFound(w, r)
		return nil, nil
	}

	return collage, nil
}

func (h *Handler) collagePageData(r *http.Request, collage *store.Collage) (CollagePageTemplateData, error) {
	ctx := r.Context()

	data := CollagePageTemplateData{
		HeadTemplateData: ui.HeadTemplateData{PageTitle: collage.Name},
		Locale:           locale.ContextLocale(ctx),
		Collage:          newCollageCard(collage),
		ThemeAccent:      collage.ThemeAccent,
		ThemeFont:        collage.ThemeFont,
	}

	programs, err := h.store.ListProgramsByCollage(ctx, collage.ID)
	if err != nil {
		return data, errors.WithStack(err)
	}

	data.Programs = programs

	galleries, err := h.store.ListGalleryEventsByCollage(ctx, collage.ID)
	if err != nil {
		return data, errors.WithStack(err)
	}

	for _, event := range galleries {
		gallery := GalleryTemplateData{
			Title:       event.Title,
			Description: event.Description,
		}

		for _, key := range event.ImageKeys {
			gallery.ImageURLs = append(gallery.ImageURLs, "/media/"+key)
		}

		data.Galleries = append(data.Galleries, gallery)
	}

	socialLinks, err := h.store.ListSocialLinksByCollage(ctx, collage.ID)
	if err != nil {
		return data, errors.WithStack(err)
	}

	data.SocialLinks = socialLinks

	forms, err := h.store.ListFormsByCollage(ctx, collage.ID)
	if err != nil {
		return data, errors.WithStack(err)
	}

	for _, form := range forms {
		if !form.Open {
			continue
		}

		data.Forms = append(data.Forms, PortalFormTemplateData{
			ID:     form.ID,
			Title:  form.Title,
			Fields: form.Fields,
		})
	}

	return data, nil
}
