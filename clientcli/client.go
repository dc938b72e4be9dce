package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a Statuspad server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Redirect following is
// disabled so the 301/302 demo routes report their raw status.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
		c.httpClient.CheckRedirect = noRedirect
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func noRedirect(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	// Apply defaults
	cfg = cfg.WithDefaults()

	// Normalize endpoint URL (remove trailing slash)
	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")

	c := &Client{
		config: &Config{
			Endpoint: endpoint,
			Token:    cfg.Token,
		},
		httpClient: &http.Client{
			Timeout:       DefaultTimeout,
			CheckRedirect: noRedirect,
		},
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Health fetches the server health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil, false)
	if err != nil {
		return nil, err
	}

	var env serverHealthEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &env.Data, nil
}

// ListUsers fetches all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users", nil, true)
	if err != nil {
		return nil, err
	}

	var env serverUsersEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return env.Data, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.Itoa(id), nil, true)
	if err != nil {
		return nil, err
	}

	var env serverUserEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &env.Data, nil
}

// CreateUser creates a new user. Requires the admin token.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/users", input, true)
	if err != nil {
		return nil, err
	}

	var env serverUserEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &env.Data, nil
}

// UpdateUser updates an existing user.
func (c *Client) UpdateUser(ctx context.Context, id int, input UpdateUserInput) (*User, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/users/"+strconv.Itoa(id), input, true)
	if err != nil {
		return nil, err
	}

	var env serverUserEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &env.Data, nil
}

// DeleteUser deletes a user by id. Requires the admin token.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/users/"+strconv.Itoa(id), nil, true)
	return err
}

// SetMaintenance toggles the server maintenance gate. Requires the
// admin token. Note that while the gate is on the server answers 503
// to every request, including the one that would turn it back off.
func (c *Client) SetMaintenance(ctx context.Context, enabled bool) error {
	payload := struct {
		Enabled bool `json:"enabled"`
	}{Enabled: enabled}

	_, err := c.do(ctx, http.MethodPost, "/admin/maintenance", payload, true)
	return err
}

// do executes a request and returns the response body, or an *APIError
// for non-2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.Endpoint+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseServerError(resp.StatusCode, body)
	}

	return body, nil
}

// probe is a single entry in the check suite.
type probe struct {
	name   string
	method string
	path   string
	want   int
	body   string
	authed bool
	header map[string]string
}

// staticProbes covers every status demo route with a fixed expectation.
var staticProbes = []probe{
	{name: "health", method: http.MethodGet, path: "/health", want: http.StatusOK},
	{name: "list users without token", method: http.MethodGet, path: "/api/users", want: http.StatusUnauthorized},
	{name: "list users with bad token", method: http.MethodGet, path: "/api/users", want: http.StatusUnauthorized,
		header: map[string]string{"Authorization": "Bearer nope"}},
	{name: "list users", method: http.MethodGet, path: "/api/users", want: http.StatusOK, authed: true},
	{name: "get missing user", method: http.MethodGet, path: "/api/users/999999", want: http.StatusNotFound, authed: true},
	{name: "create user missing email", method: http.MethodPost, path: "/api/users", want: http.StatusBadRequest,
		authed: true, body: `{"name":"Probe"}`},
	{name: "create user bad json", method: http.MethodPost, path: "/api/users", want: http.StatusBadRequest,
		authed: true, body: `{"name":`},
	{name: "static config", method: http.MethodGet, path: "/api/static/config", want: http.StatusOK},
	{name: "static config cached", method: http.MethodGet, path: "/api/static/config", want: http.StatusNotModified,
		header: map[string]string{"If-None-Match": `"config-v1.0"`}},
	{name: "moved route", method: http.MethodGet, path: "/users", want: http.StatusMovedPermanently},
	{name: "login redirect", method: http.MethodGet, path: "/login", want: http.StatusFound},
	{name: "server error demo", method: http.MethodGet, path: "/api/error/server", want: http.StatusInternalServerError},
	{name: "bad gateway demo", method: http.MethodGet, path: "/api/external/data", want: http.StatusBadGateway},
	{name: "timeout demo", method: http.MethodGet, path: "/api/slow/operation", want: http.StatusGatewayTimeout},
	{name: "unknown route", method: http.MethodGet, path: "/no/such/route", want: http.StatusNotFound},
}

// Check runs the probe suite against the server and reports, per probe,
// the status code the server answered versus the one it should answer.
//
// The full suite sends more requests than the server's default rate
// limit allows in one window, so either run it against a server started
// with a raised STATUSPAD_RATELIMIT_MAX_REQUESTS or expect 429s.
func (c *Client) Check(ctx context.Context, opts CheckOptions) (*CheckReport, error) {
	report := &CheckReport{}

	for _, p := range staticProbes {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, c.runProbe(ctx, p))
	}

	report.Results = append(report.Results, c.runCRUDSequence(ctx)...)

	if opts.RateLimit {
		report.Results = append(report.Results, c.runRateLimitProbe(ctx))
	}

	return report, nil
}

// runProbe sends one request and records the status it got.
func (c *Client) runProbe(ctx context.Context, p probe) CheckResult {
	result := CheckResult{
		Name:   p.name,
		Method: p.method,
		Path:   p.path,
		Want:   p.want,
	}

	var reqBody io.Reader = http.NoBody
	if p.body != "" {
		reqBody = strings.NewReader(p.body)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, c.config.Endpoint+p.path, reqBody)
	if err != nil {
		result.Err = fmt.Errorf("create request: %w", err)
		return result
	}
	if p.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.authed {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	for k, v := range p.header {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Err = fmt.Errorf("do request: %w", err)
		return result
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	result.Got = resp.StatusCode
	return result
}

// runCRUDSequence creates a user, reads it, updates it, deletes it, and
// confirms the delete, checking the status at every step.
func (c *Client) runCRUDSequence(ctx context.Context) []CheckResult {
	var results []CheckResult

	record := func(name, method, path string, want, got int, err error) {
		results = append(results, CheckResult{
			Name: name, Method: method, Path: path, Want: want, Got: got, Err: err,
		})
	}

	user, err := c.CreateUser(ctx, CreateUserInput{Name: "Probe User", Email: "probe@example.com"})
	record("create user", http.MethodPost, "/api/users", http.StatusCreated, statusOf(err, http.StatusCreated), errOf(err))
	if err != nil {
		return results
	}

	path := "/api/users/" + strconv.Itoa(user.ID)

	_, err = c.GetUser(ctx, user.ID)
	record("get created user", http.MethodGet, path, http.StatusOK, statusOf(err, http.StatusOK), errOf(err))

	_, err = c.UpdateUser(ctx, user.ID, UpdateUserInput{Name: "Probe User Renamed"})
	record("update user", http.MethodPut, path, http.StatusOK, statusOf(err, http.StatusOK), errOf(err))

	err = c.DeleteUser(ctx, user.ID)
	record("delete user", http.MethodDelete, path, http.StatusNoContent, statusOf(err, http.StatusNoContent), errOf(err))

	_, err = c.GetUser(ctx, user.ID)
	record("get deleted user", http.MethodGet, path, http.StatusNotFound, statusOf(err, http.StatusNotFound), errOf(err))

	return results
}

// runRateLimitProbe floods list-users until the server answers 429 or
// the attempt budget runs out.
func (c *Client) runRateLimitProbe(ctx context.Context) CheckResult {
	const maxAttempts = 50

	result := CheckResult{
		Name:   "rate limit",
		Method: http.MethodGet,
		Path:   "/api/users",
		Want:   http.StatusTooManyRequests,
	}

	for i := 0; i < maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		_, err := c.ListUsers(ctx)
		if err == nil {
			result.Got = http.StatusOK
			continue
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			result.Err = err
			return result
		}
		result.Got = apiErr.StatusCode
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return result
		}
	}

	return result
}

// statusOf maps a client call result to the probe's observed status:
// the expected status on success, the server's status on an APIError.
func statusOf(err error, okStatus int) int {
	if err == nil {
		return okStatus
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// errOf keeps only transport-level errors; an APIError carries its
// status into the result instead.
func errOf(err error) error {
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		return nil
	}
	return err
}

// parseServerError extracts the error message from a server response.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}

	var parsed serverErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		apiErr.Message = parsed.Message
		apiErr.Code = parsed.Error
		apiErr.RetryAfter = parsed.RetryAfter
	}

	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter int
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Message
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the requested resource does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized is returned when authentication fails (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden is returned when the request is not permitted (403).
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}

	// ErrRateLimited is returned when the server sheds the request (429).
	ErrRateLimited = &APIError{StatusCode: http.StatusTooManyRequests}

	// ErrMaintenance is returned while the maintenance gate is on (503).
	ErrMaintenance = &APIError{StatusCode: http.StatusServiceUnavailable}
)
