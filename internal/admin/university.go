package admin

import (
	"net/http"

	"github.com/bornholm/collagio/internal/authz"
)

func (h *Handler) serveUniversity(w http.ResponseWriter, r *http.Request) {
	user, requestLocale := h.page(w, r, authz.RoleOwner)
	if user == nil {
		return
	}

	data := UniversityTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "University Config"),
		Instance:         h.instance,
	}

	h.render(w, r, "university", data)
}

func (h *Handler) serveAPIDocs(w http.ResponseWriter, r *http.Request) {
	user, requestLocale := h.page(w, r, authz.RoleAdmin)
	if user == nil {
		return
	}

	data := APIDocsTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "API Docs"),
	}

	h.render(w, r, "api-docs", data)
}
