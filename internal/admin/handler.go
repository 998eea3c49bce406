package admin

import (
	"fmt"
	"net/http"

	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/internal/ui"
	"github.com/bornholm/collagio/pkg/blob"
)

// InstanceInfo summarizes the running configuration for the university
// settings page.
type InstanceInfo struct {
	BaseURL     string
	Locales     []string
	StorageType string
	Providers   []string
}

type Handler struct {
	prefix   string
	store    *store.Store
	sidebar  *ui.Sidebar
	storage  blob.Storage
	instance InstanceInfo
	mux      *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, store *store.Store, sidebar *ui.Sidebar, storage blob.Storage, instance InstanceInfo) *Handler {
	handler := &Handler{
		prefix:   prefix,
		store:    store,
		sidebar:  sidebar,
		storage:  storage,
		instance: instance,
		mux:      &http.ServeMux{},
	}

	// Register routes
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/{$}", prefix), handler.serveIndex)

	handler.mux.HandleFunc(fmt.Sprintf("POST %s/sidebar/view", prefix), handler.serveSidebarView)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/sidebar/toggle/{key}", prefix), handler.serveSidebarToggle)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/collages", prefix), handler.serveCollages)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/collages", prefix), handler.serveCreateCollage)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/collages/{slug}", prefix), handler.serveCollage)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/collages/{slug}/edit", prefix), handler.serveUpdateCollage)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/collages/{slug}/delete", prefix), handler.serveDeleteCollage)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/collages/{slug}/logo", prefix), handler.serveUploadCollageLogo)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/collages/{slug}/members", prefix), handler.serveAddCollageMember)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/collages/{slug}/members/{id}/delete", prefix), handler.serveRemoveCollageMember)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/programs", prefix), handler.servePrograms)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/programs", prefix), handler.serveCreateProgram)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/programs/{id}/delete", prefix), handler.serveDeleteProgram)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/forms", prefix), handler.serveForms)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/forms", prefix), handler.serveCreateForm)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/forms/{id}", prefix), handler.serveForm)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/forms/{id}/delete", prefix), handler.serveDeleteForm)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/galleries", prefix), handler.serveGalleries)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/galleries", prefix), handler.serveCreateGalleryEvent)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/galleries/{id}/images", prefix), handler.serveUploadGalleryImage)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/galleries/{id}/delete", prefix), handler.serveDeleteGalleryEvent)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/social-links", prefix), handler.serveSocialLinks)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/social-links", prefix), handler.serveCreateSocialLink)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/social-links/{id}/delete", prefix), handler.serveDeleteSocialLink)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/users", prefix), handler.serveUsers)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/users/{id}/role", prefix), handler.serveUpdateUserRole)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/users/{id}/delete", prefix), handler.serveDeleteUser)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/users/{id}/credentials", prefix), handler.serveRegenerateCredentials)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/university", prefix), handler.serveUniversity)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/api-docs", prefix), handler.serveAPIDocs)

	return handler
}

var _ http.Handler = &Handler{}
