package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
)

// ErrorResponse represents the standard error envelope
type ErrorResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Code    string        `json:"code,omitempty"`
	Details []ErrorDetail `json:"details,omitempty"`
}

func getStatus(err domain.Error) int {
	switch err.GetCode() {
	case domain.ErrInternal.GetCode():
		return http.StatusInternalServerError
	}

	return http.StatusBadRequest
}

// FromError extracts the domain error from err. Unknown errors become internal errors.
func FromError(err error) domain.Error {
	var domainErr domain.Error
	if stderrors.As(err, &domainErr) {
		return domainErr
	}
	return domain.ErrInternal.Wrap(err)
}

// RespondWithError sends a standardized error response
func RespondWithError(w http.ResponseWriter, err domain.Error) {
	RespondWithStatus(w, err, getStatus(err))
}

// RespondWithStatus sends a standardized error response with an explicit status
func RespondWithStatus(w http.ResponseWriter, err domain.Error, status int) {
	writeError(w, status, ErrorResponse{
		Success: false,
		Error:   err.GetMessage(),
		Code:    err.GetCode(),
	})
}

// RespondErrorWithDetails sends a standardized error response with details
func RespondErrorWithDetails(w http.ResponseWriter, err domain.Error, details []ErrorDetail) {
	writeError(w, getStatus(err), ErrorResponse{
		Success: false,
		Error:   err.GetMessage(),
		Code:    err.GetCode(),
		Details: details,
	})
}

func writeError(w http.ResponseWriter, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
