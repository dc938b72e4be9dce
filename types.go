package statuspad

import "regexp"

// Roles known to the service. The directory defaults new users to RoleUser;
// create, delete and maintenance-toggle operations require RoleAdmin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the user-directory entity. Owned and mutated exclusively by the
// Directory; handlers only request operations on it.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity is the authenticated principal for one request. It is constructed
// by the authenticator when the credential check passes, attached to the
// request context and never persisted.
type Identity struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
}

// CreateUserInput is the payload for creating a user. Role is optional and
// defaults to RoleUser.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// UpdateUserInput is the payload for updating a user. Nil fields are left
// untouched; only provided fields overwrite.
type UpdateUserInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// emailRegex accepts local@domain.tld shaped addresses. Deliberately loose;
// the service demonstrates status codes, not address verification.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the create payload and reports every failing field at
// once. Returns nil when the payload is acceptable.
func (in CreateUserInput) Validate() error {
	details := make(map[string]string)

	if in.Name == "" {
		details["name"] = "Name is required"
	}

	switch {
	case in.Email == "":
		details["email"] = "Email is required"
	case !emailRegex.MatchString(in.Email):
		details["email"] = "Invalid email format"
	}

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}
