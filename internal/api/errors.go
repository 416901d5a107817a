package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/wallet-roaster/internal/errors"
	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/types"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error types.ServiceError `json:"error"`
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError maps an error onto the structured error envelope. Internal
// details of 5xx errors stay out of the response body.
func respondError(w http.ResponseWriter, err error) {
	categorized := apperrors.Categorize(err)
	status := categorized.StatusCode

	if status >= http.StatusInternalServerError && !apperrors.IsUserError(err) {
		logging.WithError(err).Error("Request failed")
	}

	respondJSON(w, status, ErrorResponse{Error: *categorized.ToServiceError()})
}

// respondErrorCode sends an error response with an explicit status and code
func respondErrorCode(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	respondJSON(w, statusCode, ErrorResponse{
		Error: types.ServiceError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
