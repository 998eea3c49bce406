package admin

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) serveGalleries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	events, err := h.store.ListGalleryEvents(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list gallery events", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	collages, err := h.store.ListCollages(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list collages", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := GalleriesTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "Galleries"),
		Galleries:        make([]GalleryEventTemplateData, 0, len(events)),
		Collages:         make([]CollageTemplateData, 0, len(collages)),
	}

	for _, event := range events {
		data.Galleries = append(data.Galleries, NewGalleryEventTemplateData(event))
	}

	for _, collage := range collages {
		data.Collages = append(data.Collages, NewCollageTemplateData(collage))
	}

	h.render(w, r, "galleries", data)
}

func (h *Handler) serveCreateGalleryEvent(w http.ResponseWriter, r *http.Request) {
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

	event := &store.GalleryEvent{
		CollageID:   collageID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if event.Title == "" {
		http.Error(w, "missing title", http.StatusBadRequest)
		return
	}

	if rawDate := r.FormValue("event_date"); rawDate != "" {
		eventDate, err := time.Parse(time.DateOnly, rawDate)
		if err != nil {
			http.Error(w, "invalid event date", http.StatusBadRequest)
			return
		}

		event.EventDate = eventDate
	}

	if err := h.store.CreateGalleryEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "could not create gallery event", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/galleries", http.StatusSeeOther)
}

func (h *Handler) serveUploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid gallery event id", http.StatusBadRequest)
		return
	}

	event, err := h.store.FindGalleryEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find gallery event", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	key, err := h.storeUpload(r, "image", "galleries")
	if err != nil {
		slog.ErrorContext(ctx, "could not store image", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	event.ImageKeys = append(event.ImageKeys, key)

	if err := h.store.UpdateGalleryEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "could not update gallery event", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/galleries", http.StatusSeeOther)
}

func (h *Handler) serveDeleteGalleryEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid gallery event id", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteGalleryEvent(ctx, id); err != nil {
		slog.ErrorContext(ctx, "could not delete gallery event", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/galleries", http.StatusSeeOther)
}
