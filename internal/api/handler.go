package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	prefix string
	store  *store.Store
	mux    *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, store *store.Store) *Handler {
	handler := &Handler{
		prefix: prefix,
		store:  store,
		mux:    &http.ServeMux{},
	}

	// Register routes
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/docs", prefix), handler.serveDocs)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/collages", prefix), handler.serveListCollages)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/collages", prefix), handler.serveCreateCollage)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/collages/{slug}", prefix), handler.serveGetCollage)
	handler.mux.HandleFunc(fmt.Sprintf("PUT %s/collages/{slug}", prefix), handler.serveUpdateCollage)
	handler.mux.HandleFunc(fmt.Sprintf("DELETE %s/collages/{slug}", prefix), handler.serveDeleteCollage)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/programs", prefix), handler.serveListPrograms)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/programs", prefix), handler.serveCreateProgram)
	handler.mux.HandleFunc(fmt.Sprintf("DELETE %s/programs/{id}", prefix), handler.serveDeleteProgram)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/forms", prefix), handler.serveListForms)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/forms/{id}/submissions", prefix), handler.serveCreateSubmission)

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/social-links", prefix), handler.serveListSocialLinks)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/social-links", prefix), handler.serveCreateSocialLink)
	handler.mux.HandleFunc(fmt.Sprintf("DELETE %s/social-links/{id}", prefix), handler.serveDeleteSocialLink)

	return handler
}

var _ http.Handler = &Handler{}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", log.Error(errors.WithStack(err)))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, errorResponse{Error: message})
}

// readJSON decodes and validates a request body. It writes the error
// response itself and reports success.
func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}

	if err := structValidator.Struct(dest); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			h.writeError(w, r, http.StatusBadRequest, "invalid payload")
			return false
		}

		fields := map[string]string{}
		for _, fieldError := range validationErrors {
			fields[fieldError.Field()] = fieldError.Tag()
		}

		h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fields,
		})

		return false
	}

	return true
}

// require checks the caller's role, writing the error response when
// the requirement is not met.
func (h *Handler) require(w http.ResponseWriter, r *http.Request, min authz.Role) bool {
	role := authz.ContextRole(r.Context())

	if role == authz.RoleNone {
		h.writeError(w, r, http.StatusUnauthorized, "authentication required")
		return false
	}

	if !role.AtLeast(min) {
		h.writeError(w, r, http.StatusForbidden, "insufficient role")
		return false
	}

	return true
}

func (h *Handler) serveError(w http.ResponseWriter, r *http.Request, message string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	slog.ErrorContext(r.Context(), message, log.Error(errors.WithStack(err)))
	h.writeError(w, r, http.StatusInternalServerError, "internal error")
}
