// Package handlers provides the HTTP request handlers for the API
// endpoints, wired by dependency injection against the aggregation layer,
// the WHO client, and the snapshot container.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sumitkarde03/druglaunchindia/logging"
)

// RespondWithJSON writes a JSON response with the standard headers.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	RespondWithJSON(w, code, errorResponse)
}
