// Package handlers contains the HTTP layer of the berthing hub API.
// Repository interfaces are declared on the handler side so storage
// backends stay swappable.
package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error response structure.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
