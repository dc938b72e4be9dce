package clientcli_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/statuspad/statuspad/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &clientcli.Config{
			Endpoint: "http://localhost:3000",
			Token:    "valid-token-123",
		}

		client, err := clientcli.New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("empty endpoint uses default", func(t *testing.T) {
		client, err := clientcli.New(&clientcli.Config{})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("nil config rejected", func(t *testing.T) {
		_, err := clientcli.New(nil)
		assert.ErrorIs(t, err, clientcli.ErrConfigRequired)
	})
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code, "message": message})
}

func TestClient_Users(t *testing.T) {
	t.Run("list users sends bearer token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/users", r.URL.Path)
			assert.Equal(t, "Bearer valid-token-123", r.Header.Get("Authorization"))

			writeData(w, http.StatusOK, []map[string]any{
				{"id": 1, "name": "Alice Admin", "email": "alice@example.com", "role": "admin"},
				{"id": 2, "name": "Bob Builder", "email": "bob@example.com", "role": "user"},
			})
		}))
		defer server.Close()

		client, err := clientcli.New(&clientcli.Config{Endpoint: server.URL, Token: "valid-token-123"})
		require.NoError(t, err)

		users, err := client.ListUsers(t.Context())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "Alice Admin", users[0].Name)
		assert.Equal(t, "user", users[1].Role)
	})

	t.Run("get missing user maps to APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", "User not found")
		}))
		defer server.Close()

		client, err := clientcli.New(&clientcli.Config{Endpoint: server.URL, Token: "valid-token-123"})
		require.NoError(t, err)

		_, err = client.GetUser(t.Context(), 999999)
		require.Error(t, err)
		assert.ErrorIs(t, err, clientcli.ErrNotFound)

		var apiErr *clientcli.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "User not found", apiErr.Message)
	})

	t.Run("create user posts json body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var input map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, "Carol", input["name"])

			writeData(w, http.StatusCreated, map[string]any{
				"id": 3, "name": "Carol", "email": "carol@example.com", "role": "user",
			})
		}))
		defer server.Close()

		client, err := clientcli.New(&clientcli.Config{Endpoint: server.URL, Token: "valid-token-123"})
		require.NoError(t, err)

		user, err := client.CreateUser(t.Context(), clientcli.CreateUserInput{
			Name:  "Carol",
			Email: "carol@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, user.ID)
	})

	t.Run("delete user accepts 204", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/users/3", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client, err := clientcli.New(&clientcli.Config{Endpoint: server.URL, Token: "valid-token-123"})
		require.NoError(t, err)

		assert.NoError(t, client.DeleteUser(t.Context(), 3))
	})
}

func TestClient_SetMaintenance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/maintenance", r.URL.Path)

		var payload map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, payload["enabled"])

		writeData(w, http.StatusOK, map[string]bool{"maintenance": true})
	}))
	defer server.Close()

	client, err := clientcli.New(&clientcli.Config{Endpoint: server.URL, Token: "valid-token-123"})
	require.NoError(t, err)

	assert.NoError(t, client.SetMaintenance(t.Context(), true))
}

// probeServer mimics the server's status matrix closely enough for the
// probe suite to pass against it.
func probeServer(t *testing.T) *httptest.Server {
	t.Helper()

	nextID := 3
	deleted := map[string]bool{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token-123" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid authentication token")
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeData(w, http.StatusOK, []map[string]any{})
		case http.MethodPost:
			var input map[string]any
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				writeError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
				return
			}
			if input["email"] == nil {
				writeError(w, http.StatusBadRequest, "validation_error", "Request validation failed")
				return
			}
			writeData(w, http.StatusCreated, map[string]any{
				"id": nextID, "name": input["name"], "email": input["email"], "role": "user",
			})
		}
	})
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/users/")
		if id == "999999" || deleted[id] {
			writeError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		switch r.Method {
		case http.MethodDelete:
			deleted[id] = true
			w.WriteHeader(http.StatusNoContent)
		default:
			writeData(w, http.StatusOK, map[string]any{
				"id": nextID, "name": "Probe User", "email": "probe@example.com", "role": "user",
			})
		}
	})
	mux.HandleFunc("GET /api/static/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"config-v1.0"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"config-v1.0"`)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"version": "1.0", "features": []string{"users", "auth"}})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/api/users")
		w.WriteHeader(http.StatusMovedPermanently)
	})
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/auth/login")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("GET /api/error/server", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "internal_error", "Intentional server error for testing")
	})
	mux.HandleFunc("GET /api/external/data", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadGateway, "bad_gateway", "Failed to fetch data from external service")
	})
	mux.HandleFunc("GET /api/slow/operation", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusGatewayTimeout, "timeout", "Operation timed out")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "Endpoint not found")
	})

	return httptest.NewServer(mux)
}

func TestClient_Check(t *testing.T) {
	server := probeServer(t)
	defer server.Close()

	client, err := clientcli.New(&clientcli.Config{Endpoint: server.URL, Token: "valid-token-123"})
	require.NoError(t, err)

	report, err := client.Check(t.Context(), clientcli.CheckOptions{})
	require.NoError(t, err)

	for _, r := range report.Results {
		assert.Truef(t, r.Passed(), "%s: want %d got %d (err: %v)", r.Name, r.Want, r.Got, r.Err)
	}
	assert.Equal(t, len(report.Results), report.Passed())
	assert.Zero(t, report.Failed())
}
