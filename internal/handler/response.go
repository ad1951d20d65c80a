package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fitlogic/fitlogic-backend/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// accountID pulls the authenticated account from the request context. The
// auth middleware guarantees it on protected routes.
func accountID(r *http.Request) int64 {
	id, _ := middleware.AccountID(r.Context())
	return id
}
