package portal

import (
	"net/http"

	"github.com/bornholm/collagio/internal/store"
)

type Handler struct {
	store *store.Store
	mux   *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(store *store.Store) *Handler {
	handler := &Handler{
		store: store,
		mux:   &http.ServeMux{},
	}

	// Register routes
	handler.mux.HandleFunc("GET /{$}", handler.serveHome)
	handler.mux.HandleFunc("GET /c/{slug}", handler.serveCollage)
	handler.mux.HandleFunc("POST /c/{slug}/forms/{id}", handler.serveSubmitForm)

	return handler
}

var _ http.Handler = &Handler{}
