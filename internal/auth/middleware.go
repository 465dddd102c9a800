package auth

import (
	"net/http"

	"github.com/alphaquiz/monthlyquiz/internal/rbac"
)

// CookieMiddleware guards a route group behind a valid auth_token cookie.
// On success the claims land in the request context and the role is handed
// to rbac for permission checks.
func CookieMiddleware(s *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ck, err := r.Cookie(CookieName)
			if err != nil || ck.Value == "" {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}
			claims, err := s.Parse(ck.Value)
			if err != nil {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}
			ctx := WithClaims(r.Context(), claims)
			ctx = rbac.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
