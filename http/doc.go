// Package http provides the HTTP surface of statuspad: routing, the
// admission middleware bridge, and a set of handlers each engineered to
// return one specific status code under one specific condition.
//
// # Routes
//
// The user-directory CRUD routes live under /api/users and demonstrate
// 200/201/204 on success and 400/401/403/404 on their respective failures.
// A handful of unauthenticated demo routes cover the rest of the range:
//
//   - GET /api/static/config   conditional GET, 200 or 304 via If-None-Match
//   - GET /api/error/server    always 500
//   - GET /api/external/data   always 502
//   - GET /api/slow/operation  always 504 (timeout wins the race)
//   - GET /users, GET /login   fixed 301 and 302 redirects
//   - GET /health              200, or 503 while maintenance is on
//
// Unmatched routes return 404 with the list of known endpoints, regardless
// of method.
//
// # Admission
//
// Every route passes the maintenance gate and the rate limiter; each route
// group additionally declares whether it needs authentication and an admin
// role. The stages come from the admission package and are bridged into
// chi middleware by Admission:
//
//	base := admission.NewPipeline(gate, admission.RateLimit(limiter, keyFn))
//	r.Use(http.Admission(base))
//
// # Responses
//
// All bodies except 204 and 304 are JSON. Successes are wrapped in a
// {"success":true,"data":...} envelope; failures carry {"error","message"}
// plus a details map for validation failures and retryAfter seconds for
// rate-limit and maintenance rejections.
package http
