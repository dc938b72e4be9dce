package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/statuspad/statuspad"
	"github.com/statuspad/statuspad/admission"
)

// ErrorResponse represents a JSON error response.
type ErrorResponse struct {
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	RetryAfter int               `json:"retryAfter,omitempty"`
}

// DataResponse wraps a successful payload in the success envelope.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// WriteData writes a payload wrapped in the success envelope.
func WriteData(w http.ResponseWriter, code int, data any) {
	if err := WriteJSON(w, code, DataResponse{Success: true, Data: data}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteValidationError writes a 400 with per-field reasons.
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   "validation_error",
		Message: "Request validation failed",
		Details: details,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteRejection writes the response for a terminated admission pipeline.
// Retry-After is set both as a header and in the body when the stage
// supplied a hint.
func WriteRejection(w http.ResponseWriter, rej *admission.Rejection) {
	if rej.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rej.RetryAfter))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rej.Status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:      rej.Code,
		Message:    rej.Message,
		RetryAfter: rej.RetryAfter,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the appropriate error response based on error type.
func HandleError(w http.ResponseWriter, err error) {
	var verr *statuspad.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr.Details)
	case errors.Is(err, statuspad.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "User not found")
	default:
		slog.Error("request error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
