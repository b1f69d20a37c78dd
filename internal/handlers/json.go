package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/example/medtranscribe/internal/models"
)

// sendJSONResponse sends a JSON response to the client
func sendJSONResponse(w http.ResponseWriter, response interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// decodeJSONBody decodes a JSON request body into dst
func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// sendJSONError sends a JSON error response to the client
func sendJSONError(w http.ResponseWriter, message string, status int) {
	response := models.APIResponse{
		Success: false,
		Error:   message,
	}

	sendJSONResponse(w, response, status)
}
