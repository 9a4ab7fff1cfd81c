package api

import (
	"log/slog"
	"net/http"
	"strings"

	"itemvault/internal/auth"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	Users  UserStore
	Secret string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /users/login. On success it sets the session cookie;
// missing and wrong credentials both leave the response cookie-free.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, err := h.Users.GetByEmailWithPassword(r.Context(), req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.Password) {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(h.Secret, user.Email, user.ID.Hex())
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setSessionCookie(w, token)
	slog.Info("user logged in", "email", user.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "OK"})
}

// Logout handles POST /users/logout by instructing the client to drop the
// cookie. A token captured elsewhere stays valid until its natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "OK"})
}
