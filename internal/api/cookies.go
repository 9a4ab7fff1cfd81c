package api

import (
	"net/http"
	"time"

	"itemvault/internal/auth"
)

// sessionCookieName is the cookie carrying the session token.
const sessionCookieName = "token"

// setSessionCookie attaches the session token to the response. HttpOnly
// keeps it away from frontend scripts; max-age matches the token expiry.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie overwrites the session cookie with an empty value and
// Max-Age 0 (a negative MaxAge serializes as Max-Age=0). The token itself
// stays valid until its expiry; there is no server-side revocation.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
