// Package statuspad provides the domain model for a reference HTTP service
// that exercises and documents standard response status codes (2xx-5xx)
// against a trivial user-directory resource.
//
// # Key Components
//
//   - Directory: in-memory user store with find/insert/update/delete by id
//   - Identity: the authenticated principal attached to a single request
//   - Clock: time source abstraction so rate-limit windows are testable
//
// The request-admission pipeline (maintenance gating, rate limiting,
// authentication, authorization) lives in the admission package; the HTTP
// surface lives in the http package.
//
// # Example Usage
//
//	dir := statuspad.NewDirectory(statuspad.DefaultUsers()...)
//
//	user, err := dir.Create(ctx, statuspad.CreateUserInput{
//	    Name:  "Ada",
//	    Email: "ada@example.com",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All state is process-local and lost on restart; persistence is explicitly
// out of scope for this service.
package statuspad
