package admin

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const maxUploadSize = 10 << 20

func (h *Handler) serveCollages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collages, err := h.store.ListCollages(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list collages", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := CollagesTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "Collages"),
		Collages:         make([]CollageTemplateData, 0, len(collages)),
	}

	for _, collage := range collages {
		data.Collages = append(data.Collages, NewCollageTemplateData(collage))
	}

	h.render(w, r, "collages", data)
}

func (h *Handler) serveCreateCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collage := &store.Collage{
		Slug:        r.FormValue("slug"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		ThemeAccent: r.FormValue("theme_accent"),
		ThemeFont:   r.FormValue("theme_font"),
		OwnerID:     user.ID,
	}

	if collage.Slug == "" || collage.Name == "" {
		http.Error(w, "missing slug or name", http.StatusBadRequest)
		return
	}

	if err := h.store.CreateCollage(ctx, collage); err != nil {
		slog.ErrorContext(ctx, "could not create collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.sidebar.Invalidate(user.ID)

	http.Redirect(w, r, fmt.Sprintf("%s/collages/%s", h.prefix, collage.Slug), http.StatusSeeOther)
}

func (h *Handler) serveCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := CollageDetailTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, collage.Name),
		Collage:          NewCollageTemplateData(collage),
	}

	members, err := h.store.ListCollageMembers(ctx, collage.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not list members", log.Error(errors.WithStack(err)))
	}

	for _, member := range members {
		data.Members = append(data.Members, MemberTemplateData{
			ID:       member.ID,
			Nickname: member.Nickname,
			Email:    member.Email,
		})
	}

	programs, err := h.store.ListProgramsByCollage(ctx, collage.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not list programs", log.Error(errors.WithStack(err)))
	}

	for _, program := range programs {
		data.Programs = append(data.Programs, NewProgramTemplateData(program))
	}

	forms, err := h.store.ListFormsByCollage(ctx, collage.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not list forms", log.Error(errors.WithStack(err)))
	}

	for _, form := range forms {
		data.Forms = append(data.Forms, NewFormTemplateData(form))
	}

	galleries, err := h.store.ListGalleryEventsByCollage(ctx, collage.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not list gallery events", log.Error(errors.WithStack(err)))
	}

	for _, event := range galleries {
		data.Galleries = append(data.Galleries, NewGalleryEventTemplateData(event))
	}

	socialLinks, err := h.store.ListSocialLinksByCollage(ctx, collage.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not list social links", log.Error(errors.WithStack(err)))
	}

	for _, link := range socialLinks {
		data.SocialLinks = append(data.SocialLinks, NewSocialLinkTemplateData(link))
	}

	h.render(w, r, "collage", data)
}

func (h *Handler) serveUpdateCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	collage.Name = r.FormValue("name")
	collage.Description = r.FormValue("description")
	collage.ThemeAccent = r.FormValue("theme_accent")
	collage.ThemeFont = r.FormValue("theme_font")
	collage.Published = r.FormValue("published") == "on"

	if err := h.store.UpdateCollage(ctx, collage); err != nil {
		slog.ErrorContext(ctx, "could not update collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.sidebar.Invalidate(user.ID)

	http.Redirect(w, r, fmt.Sprintf("%s/collages/%s", h.prefix, collage.Slug), http.StatusSeeOther)
}

func (h *Handler) serveDeleteCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.store.DeleteCollage(ctx, collage.ID); err != nil {
		slog.ErrorContext(ctx, "could not delete collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.sidebar.Invalidate(user.ID)

	http.Redirect(w, r, h.prefix+"/collages", http.StatusSeeOther)
}

func (h *Handler) serveUploadCollageLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	key, err := h.storeUpload(r, "logo", "logos")
	if err != nil {
		slog.ErrorContext(ctx, "could not store logo", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	collage.LogoKey = key

	if err := h.store.UpdateCollage(ctx, collage); err != nil {
		slog.ErrorContext(ctx, "could not update collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/collages/%s", h.prefix, collage.Slug), http.StatusSeeOther)
}

func (h *Handler) serveAddCollageMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.store.AddCollageMember(ctx, collage.ID, userID); err != nil {
		slog.ErrorContext(ctx, "could not add member", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.sidebar.Invalidate(userID)

	http.Redirect(w, r, fmt.Sprintf("%s/collages/%s", h.prefix, collage.Slug), http.StatusSeeOther)
}

func (h *Handler) serveRemoveCollageMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not find collage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.store.RemoveCollageMember(ctx, collage.ID, userID); err != nil {
		slog.ErrorContext(ctx, "could not remove member", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.sidebar.Invalidate(userID)

	http.Redirect(w, r, fmt.Sprintf("%s/collages/%s", h.prefix, collage.Slug), http.StatusSeeOther)
}

// storeUpload reads one multipart file field and stores it under a
// generated key, returning the key.
func (h *Handler) storeUpload(r *http.Request, field string, keyPrefix string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", errors.WithStack(err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", errors.WithStack(err)
	}

	defer file.Close()

	key := keyPrefix + "/" + xid.New().String() + path.Ext(header.Filename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.storage.Put(r.Context(), key, file, header.Size, contentType); err != nil {
		return "", errors.WithStack(err)
	}

	return key, nil
}
