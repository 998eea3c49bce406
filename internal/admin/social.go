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

func (h *Handler) serveSocialLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	links, err := h.store.ListSocialLinks(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list social links", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	collages, err := h.store.ListCollages(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list collages", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := SocialLinksTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "Social Links"),
		SocialLinks:      make([]SocialLinkTemplateData, 0, len(links)),
		Collages:         make([]CollageTemplateData, 0, len(collages)),
	}

	for _, link := range links {
		data.SocialLinks = append(data.SocialLinks, NewSocialLinkTemplateData(link))
	}

	for _, collage := range collages {
		data.Collages = append(data.Collages, NewCollageTemplateData(collage))
	}

	h.render(w, r, "social-links", data)
}

func (h *Handler) serveCreateSocialLink(w http.ResponseWriter, r *http.Request) {
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

	link := &store.SocialLink{
		CollageID: collageID,
		Platform:  r.FormValue("platform"),
		URL:       r.FormValue("url"),
	}

	if link.Platform == "" || link.URL == "" {
		http.Error(w, "missing platform or url", http.StatusBadRequest)
		return
	}

	if err := h.store.CreateSocialLink(ctx, link); err != nil {
		slog.ErrorContext(ctx, "could not create social link", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/social-links", http.StatusSeeOther)
}

func (h *Handler) serveDeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid social link id", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteSocialLink(ctx, id); err != nil {
		slog.ErrorContext(ctx, "could not delete social link", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/social-links", http.StatusSeeOther)
}
