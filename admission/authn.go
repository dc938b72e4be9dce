package admission

import (
	"errors"
	"net/http"

	"github.com/statuspad/statuspad"
)

// Authenticator validates the presented bearer token against the single
// accepted value. This is a demonstration stand-in, not credential
// resolution: the valid token deterministically maps to one identity and
// everything else is rejected.
type Authenticator struct {
	token string
}

// NewAuthenticator creates an Authenticator accepting the given token.
func NewAuthenticator(token string) *Authenticator {
	return &Authenticator{token: token}
}

// Authenticate checks the raw Authorization header value. It returns
// statuspad.ErrTokenMissing when the header is absent and
// statuspad.ErrTokenInvalid when it does not equal the accepted literal.
func (a *Authenticator) Authenticate(header string) (statuspad.Identity, error) {
	switch {
	case header == "":
		return statuspad.Identity{}, statuspad.ErrTokenMissing
	case header != "Bearer "+a.token:
		return statuspad.Identity{}, statuspad.ErrTokenInvalid
	}
	return statuspad.Identity{ID: 1, Role: statuspad.RoleAdmin}, nil
}

// Check implements Stage. On success the identity is attached to the
// request state for later stages and the handler.
func (a *Authenticator) Check(r *http.Request, st *State) *Rejection {
	id, err := a.Authenticate(r.Header.Get("Authorization"))
	if err != nil {
		msg := "Invalid authentication token"
		if errors.Is(err, statuspad.ErrTokenMissing) {
			msg = "Authentication token is missing"
		}
		return &Rejection{
			Status:  http.StatusUnauthorized,
			Code:    "unauthorized",
			Message: msg,
		}
	}

	st.Identity = &id
	return nil
}
