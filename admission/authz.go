package admission

import (
	"net/http"

	"github.com/statuspad/statuspad"
)

// Authorize checks an authenticated identity's role against the role an
// operation requires. Pure equality; no other state is consulted.
func Authorize(id statuspad.Identity, requiredRole string) error {
	if id.Role != requiredRole {
		return statuspad.ErrForbidden
	}
	return nil
}

type roleStage struct {
	role string
}

// RequireRole wraps Authorize as a pipeline stage. It must be placed after
// an Authenticator stage; a request without an identity is rejected as
// unauthenticated rather than forbidden.
func RequireRole(role string) Stage {
	return &roleStage{role: role}
}

func (s *roleStage) Check(_ *http.Request, st *State) *Rejection {
	if st.Identity == nil {
		return &Rejection{
			Status:  http.StatusUnauthorized,
			Code:    "unauthorized",
			Message: "Authentication token is missing",
		}
	}

	if err := Authorize(*st.Identity, s.role); err != nil {
		return &Rejection{
			Status:  http.StatusForbidden,
			Code:    "forbidden",
			Message: "Insufficient permissions for this operation",
		}
	}
	return nil
}
