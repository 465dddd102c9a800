package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alphaquiz/monthlyquiz/internal/auth"
)

// LoginHandler validates the login form, derives the stable user id from
// the email, and sets the auth_token cookie.
// POST /auth/login {"name":..., "email":..., "password":...}
func LoginHandler(a *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "Please provide valid name, email, and password (min 4 chars)")
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" || req.Email == "" || req.Password == "" || len(name) < 2 || len(req.Password) < 4 {
			writeErr(w, http.StatusBadRequest, "Please provide valid name, email, and password (min 4 chars)")
			return
		}
		if !auth.ValidEmail(req.Email) {
			writeErr(w, http.StatusBadRequest, "Please provide a valid email address")
			return
		}

		userID := auth.UserID(req.Email)
		email := strings.TrimSpace(req.Email)
		token, err := a.Issue(userID, name, email, "student")
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "could not issue session token")
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			MaxAge:   int(auth.TokenTTL.Seconds()),
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Login successful",
			"user":    map[string]string{"name": name, "email": email, "userId": userID},
		})
	}
}

// CheckHandler reports whether the caller holds a valid session. Cookie
// presence alone is not enough; the token must verify.
// GET /auth/check
func CheckHandler(a *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(auth.CookieName)
		authenticated := false
		if err == nil && ck.Value != "" {
			if _, err := a.Parse(ck.Value); err == nil {
				authenticated = true
			}
		}
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
	}
}
