// Package admission implements the request-admission pipeline: the ordered
// checks every inbound request passes before reaching a resource handler.
//
// The fixed stage order is maintenance gate, rate limiter, then the
// route-declared subset of authenticator and authorizer. Each stage may
// terminate the chain with a Rejection; the pipeline stops at the first one.
//
//	gate := admission.NewGate(3600)
//	limiter := admission.NewRateLimiter(admission.RateLimitConfig{
//	    Window:      time.Minute,
//	    MaxRequests: 10,
//	}, statuspad.SystemClock())
//
//	base := admission.NewPipeline(gate, admission.RateLimit(limiter, admission.DefaultKeyFunc(false)))
//
// The rate limiter is a per-identity fixed-window counter. The maintenance
// gate is a process-wide switch that short-circuits all traffic. Neither the
// pipeline nor the auth stages hold request state; per-request values travel
// in a State passed through the chain.
package admission
