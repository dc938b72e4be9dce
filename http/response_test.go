package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/statuspad/statuspad"
	"github.com/statuspad/statuspad/admission"
	statushttp "github.com/statuspad/statuspad/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	statushttp.WriteData(rec, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rec.Body.String())
}

func TestWriteError_Body(t *testing.T) {
	rec := httptest.NewRecorder()
	statushttp.WriteError(rec, http.StatusBadGateway, "bad_gateway", "upstream broken")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"bad_gateway","message":"upstream broken"}`, rec.Body.String())
}

func TestWriteRejection_RetryAfterHeaderAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	statushttp.WriteRejection(rec, &admission.Rejection{
		Status:     http.StatusTooManyRequests,
		Code:       "rate_limited",
		Message:    "Too many requests, slow down",
		RetryAfter: 42,
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))

	var resp statushttp.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 42, resp.RetryAfter)
}

func TestWriteRejection_NoRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	statushttp.WriteRejection(rec, &admission.Rejection{
		Status:  http.StatusUnauthorized,
		Code:    "unauthorized",
		Message: "Authentication token is missing",
	})

	assert.Empty(t, rec.Header().Get("Retry-After"))
	assert.NotContains(t, rec.Body.String(), "retryAfter")
}

func TestHandleError_Mapping(t *testing.T) {
	t.Run("validation with details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		statushttp.HandleError(rec, &statuspad.ValidationError{Details: map[string]string{
			"email": "Email is required",
		}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp statushttp.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "validation_error", resp.Error)
		assert.Equal(t, "Email is required", resp.Details["email"])
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		statushttp.HandleError(rec, statuspad.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown error is a generic 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		statushttp.HandleError(rec, statuspad.ErrInternal)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal server error")
	})
}
