package admission

import (
	"net/http"
	"sync/atomic"
)

// Gate is the process-wide maintenance switch. While enabled it rejects
// every request, authenticated or not, before any other stage runs. The
// initial state is off.
type Gate struct {
	enabled    atomic.Bool
	retryAfter int
}

// NewGate creates a Gate advertising the given retry-after hint in seconds.
func NewGate(retryAfterSeconds int) *Gate {
	return &Gate{retryAfter: retryAfterSeconds}
}

// Enabled reports whether maintenance mode is on.
func (g *Gate) Enabled() bool { return g.enabled.Load() }

// Set switches maintenance mode. Takes effect for all subsequent requests
// process-wide, immediately.
func (g *Gate) Set(on bool) { g.enabled.Store(on) }

// Check implements Stage.
func (g *Gate) Check(_ *http.Request, _ *State) *Rejection {
	if !g.enabled.Load() {
		return nil
	}
	return &Rejection{
		Status:     http.StatusServiceUnavailable,
		Code:       "maintenance",
		Message:    "Service is under maintenance, try again later",
		RetryAfter: g.retryAfter,
	}
}
