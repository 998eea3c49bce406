package oauth2

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

const sessionValueUser = "user"

var errSessionNotFound = errors.New("session not found")

func (h *Handler) storeSessionUser(w http.ResponseWriter, r *http.Request, user *User) error {
	session, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return errors.WithStack(err)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return errors.WithStack(err)
	}

	session.Values[sessionValueUser] = string(raw)

	if err := session.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (h *Handler) retrieveSessionUser(r *http.Request) (*User, error) {
	session, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if session.IsNew {
		return nil, errors.WithStack(errSessionNotFound)
	}

	raw, ok := session.Values[sessionValueUser].(string)
	if !ok {
		return nil, errors.WithStack(errSessionNotFound)
	}

	user := &User{}
	if err := json.Unmarshal([]byte(raw), user); err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return errors.WithStack(err)
	}

	if session.IsNew {
		return errors.WithStack(errSessionNotFound)
	}

	delete(session.Values, sessionValueUser)
	session.Options.MaxAge = -1

	if err := session.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
