package api

import (
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
)

type SocialLinkResponse struct {
	ID        int64  `json:"id"`
	CollageID int64  `json:"collageId"`
	Platform  string `json:"platform"`
	URL       string `json:"url"`
}

type CreateSocialLinkRequest struct {
	CollageID int64  `json:"collageId" validate:"required,gt=0"`
	Platform  string `json:"platform" validate:"required,lowercase"`
	URL       string `json:"url" validate:"required,url"`
}

func (h *Handler) serveListSocialLinks(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	links, err := h.store.ListSocialLinks(r.Context())
	if err != nil {
		h.serveError(w, r, "could not list social links", err)
		return
	}

	response := make([]SocialLinkResponse, 0, len(links))
	for _, link := range links {
		response = append(response, SocialLinkResponse{
			ID:        link.ID,
			CollageID: link.CollageID,
			Platform:  link.Platform,
			URL:       link.URL,
		})
	}

	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) serveCreateSocialLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	payload := CreateSocialLinkRequest{}
	if !h.readJSON(w, r, &payload) {
		return
	}

	link := &store.SocialLink{
		CollageID: payload.CollageID,
		Platform:  payload.Platform,
		URL:       payload.URL,
	}

	if err := h.store.CreateSocialLink(ctx, link); err != nil {
		h.serveError(w, r, "could not create social link", err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, SocialLinkResponse{
		ID:        link.ID,
		CollageID: link.CollageID,
		Platform:  link.Platform,
		URL:       link.URL,
	})
}

func (h *Handler) serveDeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid social link id")
		return
	}

	if err := h.store.DeleteSocialLink(ctx, id); err != nil {
		h.serveError(w, r, "could not delete social link", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
