package clientcli

// User is a user record returned by the server.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateUserInput holds fields for creating a user.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// UpdateUserInput holds fields for updating a user. Empty fields are
// omitted from the request so the server keeps the existing values.
type UpdateUserInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// HealthResult holds the server health response.
type HealthResult struct {
	Status string `json:"status"`
}

// CheckOptions configures the probe suite.
type CheckOptions struct {
	// RateLimit enables the rate-limit probe, which floods the server
	// until it answers 429. It consumes the remaining request budget
	// of the current window, so it is off by default.
	RateLimit bool
}

// CheckResult records a single probe: the request sent, the status the
// server should answer with, and what it actually answered.
type CheckResult struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Want   int    `json:"want"`
	Got    int    `json:"got"`
	Err    error  `json:"-"`
}

// Passed reports whether the probe got the expected status.
func (r CheckResult) Passed() bool {
	return r.Err == nil && r.Got == r.Want
}

// CheckReport holds the results of a full probe run.
type CheckReport struct {
	Results []CheckResult `json:"results"`
}

// Passed returns the number of probes that passed.
func (c *CheckReport) Passed() int {
	n := 0
	for _, r := range c.Results {
		if r.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of probes that failed.
func (c *CheckReport) Failed() int {
	return len(c.Results) - c.Passed()
}

// Envelopes the server wraps payloads in.
type serverUserEnvelope struct {
	Success bool `json:"success"`
	Data    User `json:"data"`
}

type serverUsersEnvelope struct {
	Success bool   `json:"success"`
	Data    []User `json:"data"`
}

type serverHealthEnvelope struct {
	Success bool         `json:"success"`
	Data    HealthResult `json:"data"`
}

// serverErrorBody is the error envelope the server returns on failures.
type serverErrorBody struct {
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	RetryAfter int               `json:"retryAfter,omitempty"`
}
