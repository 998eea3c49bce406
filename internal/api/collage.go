package api

import (
	"net/http"
	"time"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
)

type CollageResponse struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LogoKey     string    `json:"logoKey,omitempty"`
	ThemeAccent string    `json:"themeAccent,omitempty"`
	ThemeFont   string    `json:"themeFont,omitempty"`
	Published   bool      `json:"published"`
	OwnerID     int64     `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateCollageRequest struct {
	Slug        string `json:"slug" validate:"required,lowercase,alphanum"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ThemeAccent string `json:"themeAccent" validate:"omitempty,hexcolor"`
	ThemeFont   string `json:"themeFont"`
}

type UpdateCollageRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ThemeAccent string `json:"themeAccent" validate:"omitempty,hexcolor"`
	ThemeFont   string `json:"themeFont"`
	Published   bool   `json:"published"`
}

func newCollageResponse(collage *store.Collage) CollageResponse {
	return CollageResponse{
		ID:          collage.ID,
		Slug:        collage.Slug,
		Name:        collage.Name,
		Description: collage.Description,
		LogoKey:     collage.LogoKey,
		ThemeAccent: collage.ThemeAccent,
		ThemeFont:   collage.ThemeFont,
		Published:   collage.Published,
		OwnerID:     collage.OwnerID,
		CreatedAt:   collage.CreatedAt,
		UpdatedAt:   collage.UpdatedAt,
	}
}

func (h *Handler) serveListCollages(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	collages, err := h.store.ListCollages(r.Context())
	if err != nil {
		h.serveError(w, r, "could not list collages", err)
		return
	}

	response := make([]CollageResponse, 0, len(collages))
	for _, collage := range collages {
		response = append(response, newCollageResponse(collage))
	}

	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) serveCreateCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	user, err := authz.ContextUser(ctx)
	if err != nil {
		h.writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	storeUser, ok := user.(*store.User)
	if !ok {
		h.writeError(w, r, http.StatusForbidden, "insufficient role")
		return
	}

	payload := CreateCollageRequest{}
	if !h.readJSON(w, r, &payload) {
		return
	}

	collage := &store.Collage{
		Slug:        payload.Slug,
		Name:        payload.Name,
		Description: payload.Description,
		ThemeAccent: payload.ThemeAccent,
		ThemeFont:   payload.ThemeFont,
		OwnerID:     storeUser.ID,
	}

	if err := h.store.CreateCollage(ctx, collage); err != nil {
		h.serveError(w, r, "could not create collage", err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, newCollageResponse(collage))
}

func (h *Handler) serveGetCollage(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	collage, err := h.store.FindCollageBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.serveError(w, r, "could not find collage", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCollageResponse(collage))
}

func (h *Handler) serveUpdateCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		h.serveError(w, r, "could not find collage", err)
		return
	}

	payload := UpdateCollageRequest{}
	if !h.readJSON(w, r, &payload) {
		return
	}

	collage.Name = payload.Name
	collage.Description = payload.Description
	collage.ThemeAccent = payload.ThemeAccent
	collage.ThemeFont = payload.ThemeFont
	collage.Published = payload.Published

	if err := h.store.UpdateCollage(ctx, collage); err != nil {
		h.serveError(w, r, "could not update collage", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCollageResponse(collage))
}

func (h *Handler) serveDeleteCollage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleSuperadmin) {
		return
	}

	collage, err := h.store.FindCollageBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		h.serveError(w, r, "could not find collage", err)
		return
	}

	if err := h.store.DeleteCollage(ctx, collage.ID); err != nil {
		h.serveError(w, r, "could not delete collage", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
