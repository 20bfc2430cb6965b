package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/midwaife/backend/internal/ctxkeys"
	"github.com/midwaife/backend/internal/service"
)

// BearerAuth verifies the Authorization header and stores the token's user id
// in the request context. With auth disabled every request passes through.
func BearerAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !authService.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := authService.VerifyJWT(strings.TrimSpace(token))
			if err != nil {
				slog.Warn("rejected bearer token", "error", err, "path", r.URL.Path)
				writeJSONError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUserID(r.Context(), userID)))
		})
	}
}

// Authorized reports whether the caller may act for userID. Requests without
// an authenticated user are only possible when auth is disabled.
func Authorized(r *http.Request, userID string) bool {
	caller := ctxkeys.UserID(r.Context())
	return caller == "" || caller == userID
}

func isPublicPath(path string) bool {
	return path == "/healthz"
}
