package admission_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/statuspad/statuspad/admission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_DisabledByDefault(t *testing.T) {
	gate := admission.NewGate(3600)

	assert.False(t, gate.Enabled())
	assert.Nil(t, gate.Check(httptest.NewRequest("GET", "/health", nil), &admission.State{}))
}

func TestGate_RejectsEverythingWhenEnabled(t *testing.T) {
	gate := admission.NewGate(3600)
	gate.Set(true)

	rej := gate.Check(httptest.NewRequest("GET", "/health", nil), &admission.State{})
	require.NotNil(t, rej)
	assert.Equal(t, http.StatusServiceUnavailable, rej.Status)
	assert.Equal(t, "maintenance", rej.Code)
	assert.Equal(t, 3600, rej.RetryAfter)

	gate.Set(false)
	assert.Nil(t, gate.Check(httptest.NewRequest("GET", "/health", nil), &admission.State{}))
}

func TestPipeline_RunsStagesInDeclaredOrder(t *testing.T) {
	var order []string

	record := func(name string) admission.Stage {
		return admission.StageFunc(func(_ *http.Request, _ *admission.State) *admission.Rejection {
			order = append(order, name)
			return nil
		})
	}

	p := admission.NewPipeline(record("gate"), record("ratelimit"), record("authn"), record("authz"))
	rej := p.Admit(httptest.NewRequest("GET", "/", nil), &admission.State{})

	assert.Nil(t, rej)
	assert.Equal(t, []string{"gate", "ratelimit", "authn", "authz"}, order)
}

func TestPipeline_StopsAtFirstRejection(t *testing.T) {
	reached := false

	reject := admission.StageFunc(func(_ *http.Request, _ *admission.State) *admission.Rejection {
		return &admission.Rejection{Status: 429, Code: "rate_limited"}
	})
	sentinel := admission.StageFunc(func(_ *http.Request, _ *admission.State) *admission.Rejection {
		reached = true
		return nil
	})

	p := admission.NewPipeline(reject, sentinel)
	rej := p.Admit(httptest.NewRequest("GET", "/", nil), &admission.State{})

	require.NotNil(t, rej)
	assert.Equal(t, 429, rej.Status)
	assert.False(t, reached, "stages after a rejection must not run")
}

func TestPipeline_GateBeforeRateLimiter(t *testing.T) {
	gate := admission.NewGate(3600)
	gate.Set(true)

	limiter := admission.NewRateLimiter(admission.RateLimitConfig{
		Window:      time.Minute,
		MaxRequests: 10,
	}, newFakeClock())

	p := admission.NewPipeline(gate, admission.RateLimit(limiter, nil))

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.RemoteAddr = "192.0.2.9:1234"

	rej := p.Admit(req, &admission.State{})
	require.NotNil(t, rej)
	assert.Equal(t, http.StatusServiceUnavailable, rej.Status)

	// The gate short-circuited, so the limiter never counted the request.
	gate.Set(false)
	dec := limiter.Admit("192.0.2.9")
	assert.Equal(t, 9, dec.Remaining)
}

func TestPipeline_Empty(t *testing.T) {
	p := admission.NewPipeline()
	assert.Nil(t, p.Admit(httptest.NewRequest("GET", "/", nil), &admission.State{}))
}
