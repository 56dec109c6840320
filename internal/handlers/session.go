package handlers

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/shelf/internal/library"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// loginRequest mirrors the login form. Password is accepted and ignored.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User     string `json:"user"`
	LoggedIn bool   `json:"logged_in"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: invalid JSON: %v", types.ErrValidation, err))
		return
	}
	if err := h.lib.Session.Login(req.Username); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.lib.Session.Logout(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w)
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	h.writeSession(w)
}

func (h *Handler) writeSession(w http.ResponseWriter) {
	user, ok := h.lib.Session.CurrentUser()
	if !ok {
		user = library.GuestName
	}
	h.writeJSON(w, http.StatusOK, sessionResponse{User: user, LoggedIn: ok})
}
