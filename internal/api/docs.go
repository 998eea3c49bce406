package api

import "net/http"

// EndpointDoc describes one REST endpoint.
type EndpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Role        string `json:"role"`
}

type DocsResponse struct {
	Name      string        `json:"name"`
	Auth      string        `json:"auth"`
	Endpoints []EndpointDoc `json:"endpoints"`
}

var endpointDocs = []EndpointDoc{
	{Method: "GET", Path: "/api/docs", Description: "This document", Role: ""},
	{Method: "GET", Path: "/api/collages", Description: "List collages", Role: "ADMIN"},
	{Method: "POST", Path: "/api/collages", Description: "Create a collage", Role: "ADMIN"},
	{Method: "GET", Path: "/api/collages/{slug}", Description: "Get a collage", Role: "ADMIN"},
	{Method: "PUT", Path: "/api/collages/{slug}", Description: "Update a collage", Role: "ADMIN"},
	{Method: "DELETE", Path: "/api/collages/{slug}", Description: "Delete a collage", Role: "SUPERADMIN"},
	{Method: "GET", Path: "/api/programs", Description: "List programs", Role: "ADMIN"},
	{Method: "POST", Path: "/api/programs", Description: "Create a program", Role: "ADMIN"},
	{Method: "DELETE", Path: "/api/programs/{id}", Description: "Delete a program", Role: "ADMIN"},
	{Method: "GET", Path: "/api/forms", Description: "List forms", Role: "ADMIN"},
	{Method: "POST", Path: "/api/forms/{id}/submissions", Description: "Submit values to an open form", Role: "GUEST"},
	{Method: "GET", Path: "/api/social-links", Description: "List social links", Role: "ADMIN"},
	{Method: "POST", Path: "/api/social-links", Description: "Create a social link", Role: "ADMIN"},
	{Method: "DELETE", Path: "/api/social-links/{id}", Description: "Delete a social link", Role: "ADMIN"},
}

func (h *Handler) serveDocs(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, DocsResponse{
		Name:      "collagio",
		Auth:      "http basic, credentials generated from the admin users page",
		Endpoints: endpointDocs,
	})
}
