package http

import (
	"context"
	"net/http"
	"time"
)

// configETag is the fixed version token for the static config resource.
const configETag = `"config-v1.0"`

// staticConfig is the only representation the config resource ever has.
var staticConfig = struct {
	Version  string   `json:"version"`
	Features []string `json:"features"`
}{
	Version:  "1.0",
	Features: []string{"users", "auth"},
}

// handleStaticConfig demonstrates a conditional GET. A matching
// If-None-Match yields 304 with an empty body; anything else gets the full
// representation with the ETag header set.
func (h *Handler) handleStaticConfig(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("If-None-Match") == configETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", configETag)
	_ = WriteJSON(w, http.StatusOK, staticConfig)
}

// handleServerError always returns 500 with a generic message.
func (h *Handler) handleServerError(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// handleExternalData simulates an upstream dependency failure; no real
// upstream is called.
func (h *Handler) handleExternalData(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusBadGateway, "bad_gateway", "Upstream service returned an invalid response")
}

const (
	// slowOperationDelay is far longer than the timeout, so the timeout
	// always wins the race and the success branch is unreachable.
	slowOperationDelay   = 5 * time.Second
	slowOperationTimeout = 100 * time.Millisecond
)

// handleSlowOperation races a long-running operation against a short
// timeout. Cancelling the context stops the losing side.
func (h *Handler) handleSlowOperation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), slowOperationTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		t := time.NewTimer(slowOperationDelay)
		defer t.Stop()
		select {
		case <-t.C:
			close(done)
		case <-ctx.Done():
		}
	}()

	select {
	case <-done:
		WriteData(w, http.StatusOK, map[string]string{"result": "completed"})
	case <-ctx.Done():
		WriteError(w, http.StatusGatewayTimeout, "gateway_timeout", "Upstream operation timed out")
	}
}

// handleUsersMoved is the permanent redirect from the legacy listing path.
func (h *Handler) handleUsersMoved(w http.ResponseWriter, _ *http.Request) {
	h.redirect(w, http.StatusMovedPermanently, "/api/users")
}

// handleLoginMoved is the temporary redirect to the login flow.
func (h *Handler) handleLoginMoved(w http.ResponseWriter, _ *http.Request) {
	h.redirect(w, http.StatusFound, "/auth/login")
}

func (h *Handler) redirect(w http.ResponseWriter, code int, location string) {
	w.Header().Set("Location", location)
	WriteData(w, code, map[string]string{"location": location})
}
