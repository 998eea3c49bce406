package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/pkg/errors"
)

const apiPasswordLength = 32

func (h *Handler) serveUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, requestLocale := h.page(w, r, authz.RoleSuperadmin)
	if user == nil {
		return
	}

	users, err := h.store.ListUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list users", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := UsersTemplateData{
		BaseTemplateData: h.base(r, user, requestLocale, "Users"),
		Users:            make([]UserTemplateData, 0, len(users)),
		Roles: []string{
			authz.RoleGuest.String(),
			authz.RoleAdmin.String(),
			authz.RoleSuperadmin.String(),
			authz.RoleOwner.String(),
		},
		Password: r.URL.Query().Get("password"),
	}

	for _, u := range users {
		data.Users = append(data.Users, NewUserTemplateData(u))
	}

	h.render(w, r, "users", data)
}

func (h *Handler) serveUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleSuperadmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	role := authz.RoleFromString(r.FormValue("role"))
	if role == authz.RoleNone {
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}

	// Only the owner may grant owner
	if role == authz.RoleOwner && user.Role != authz.RoleOwner {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	if err := h.store.UpdateUserRole(ctx, id, role); err != nil {
		slog.ErrorContext(ctx, "could not update user role", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/users", http.StatusSeeOther)
}

func (h *Handler) serveDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleSuperadmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if id == user.ID {
		http.Error(w, "cannot delete yourself", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteUser(ctx, id); err != nil {
		slog.ErrorContext(ctx, "could not delete user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.prefix+"/users", http.StatusSeeOther)
}

func (h *Handler) serveRegenerateCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.page(w, r, authz.RoleSuperadmin)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	password, err := h.store.RegenerateAPICredentials(ctx, id, apiPasswordLength)
	if err != nil {
		slog.ErrorContext(ctx, "could not regenerate credentials", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// The plaintext password is shown once, on the redirected page
	http.Redirect(w, r, h.prefix+"/users?password="+password, http.StatusSeeOther)
}
