package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/midwaife/backend/internal/ctxkeys"
)

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func userIDFrom(r *http.Request) string {
	return ctxkeys.UserID(r.Context())
}
