package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/statuspad/statuspad"
	"github.com/statuspad/statuspad/admission"
)

// Service is the user-directory collaborator the handlers operate on.
type Service interface {
	List(ctx context.Context) ([]statuspad.User, error)
	Get(ctx context.Context, id int) (statuspad.User, error)
	Create(ctx context.Context, in statuspad.CreateUserInput) (statuspad.User, error)
	Update(ctx context.Context, id int, in statuspad.UpdateUserInput) (statuspad.User, error)
	Delete(ctx context.Context, id int) error
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type HandlerConfig struct {
	Development    bool
	CORS           CORSConfig
	Gate           *admission.Gate
	Limiter        *admission.RateLimiter
	TrustForwarded bool
	Authenticator  *admission.Authenticator
}

// Handler provides the HTTP handlers and routing for the service.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// knownEndpoints is the surface advertised by the unmatched-route response.
var knownEndpoints = []string{
	"GET /health",
	"GET /api/users",
	"GET /api/users/{id}",
	"POST /api/users",
	"PUT /api/users/{id}",
	"DELETE /api/users/{id}",
	"GET /api/static/config",
	"GET /api/error/server",
	"GET /api/external/data",
	"GET /api/slow/operation",
	"GET /users",
	"GET /login",
	"POST /admin/maintenance",
}

// Router returns an http.Handler with the full route table. The maintenance
// gate and rate limiter run for every route, the unmatched-route fallback
// included; each route group declares its own auth requirements on top.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recover(h.config.Development))

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	var global []admission.Stage
	if h.config.Gate != nil {
		global = append(global, h.config.Gate)
	}
	if h.config.Limiter != nil {
		key := admission.DefaultKeyFunc(h.config.TrustForwarded)
		global = append(global, admission.RateLimit(h.config.Limiter, key))
	}
	if len(global) > 0 {
		r.Use(Admission(admission.NewPipeline(global...)))
	}

	authed := Admission(admission.NewPipeline(h.config.Authenticator))
	adminOnly := Admission(admission.NewPipeline(
		h.config.Authenticator,
		admission.RequireRole(statuspad.RoleAdmin),
	))

	r.Get("/health", h.handleHealth)
	r.Get("/users", h.handleUsersMoved)
	r.Get("/login", h.handleLoginMoved)

	r.Route("/api", func(r chi.Router) {
		r.Get("/static/config", h.handleStaticConfig)
		r.Get("/error/server", h.handleServerError)
		r.Get("/external/data", h.handleExternalData)
		r.Get("/slow/operation", h.handleSlowOperation)

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/", h.handleListUsers)
				r.Get("/{id}", h.handleGetUser)
				r.Put("/{id}", h.handleUpdateUser)
			})
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", h.handleCreateUser)
				r.Delete("/{id}", h.handleDeleteUser)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/admin/maintenance", h.handleMaintenance)
	})

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleNotFound)

	return r
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, users)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, user)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in statuspad.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}

	user, err := h.service.Create(r.Context(), in)
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteData(w, http.StatusCreated, user)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}

	var in statuspad.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}

	user, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		HandleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, user)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMaintenance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}

	h.config.Gate.Set(body.Enabled)

	if id, ok := IdentityFromContext(r.Context()); ok {
		slog.Info("maintenance mode toggled", "enabled", body.Enabled, "identity", id.ID)
	}
	WriteData(w, http.StatusOK, map[string]bool{"maintenance": body.Enabled})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	err := WriteJSON(w, http.StatusNotFound, struct {
		Error     string   `json:"error"`
		Message   string   `json:"message"`
		Endpoints []string `json:"endpoints"`
	}{
		Error:     "not_found",
		Message:   "Route not found",
		Endpoints: knownEndpoints,
	})
	if err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// userID parses the id route parameter. A non-numeric id is treated the
// same as an unknown one.
func userID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
