package api

import (
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/store"
)

type ProgramResponse struct {
	ID            int64  `json:"id"`
	CollageID     int64  `json:"collageId"`
	Name          string `json:"name"`
	Degree        string `json:"degree,omitempty"`
	Description   string `json:"description,omitempty"`
	DurationYears int    `json:"durationYears,omitempty"`
}

type CreateProgramRequest struct {
	CollageID     int64  `json:"collageId" validate:"required,gt=0"`
	Name          string `json:"name" validate:"required"`
	Degree        string `json:"degree"`
	Description   string `json:"description"`
	DurationYears int    `json:"durationYears" validate:"gte=0,lte=12"`
}

func newProgramResponse(program *store.Program) ProgramResponse {
	return ProgramResponse{
		ID:            program.ID,
		CollageID:     program.CollageID,
		Name:          program.Name,
		Degree:        program.Degree,
		Description:   program.Description,
		DurationYears: program.DurationYears,
	}
}

func (h *Handler) serveListPrograms(w http.ResponseWriter, r *http.Request) {
	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	programs, err := h.store.ListPrograms(r.Context())
	if err != nil {
		h.serveError(w, r, "could not list programs", err)
		return
	}

	response := make([]ProgramResponse, 0, len(programs))
	for _, program := range programs {
		response = append(response, newProgramResponse(program))
	}

	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) serveCreateProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	payload := CreateProgramRequest{}
	if !h.readJSON(w, r, &payload) {
		return
	}

	program := &store.Program{
		CollageID:     payload.CollageID,
		Name:          payload.Name,
		Degree:        payload.Degree,
		Description:   payload.Description,
		DurationYears: payload.DurationYears,
	}

	if err := h.store.CreateProgram(ctx, program); err != nil {
		h.serveError(w, r, "could not create program", err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, newProgramResponse(program))
}

func (h *Handler) serveDeleteProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.require(w, r, authz.RoleAdmin) {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid program id")
		return
	}

	if err := h.store.DeleteProgram(ctx, id); err != nil {
		h.serveError(w, r, "could not delete program", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
