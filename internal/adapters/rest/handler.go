// Package rest is the HTTP adapter: routing, CORS, request logging, and the
// JSON surface of the recommendation service.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/calliope-labs/moodtune/internal/core/services"
)

// Handler manages the HTTP interface for the recommender.
type Handler struct {
	svc     *services.Orchestrator
	router  chi.Router
	logger  zerolog.Logger
	version string
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, logger zerolog.Logger, version string, allowedOrigins []string) *Handler {
	h := &Handler{
		svc:     svc,
		router:  chi.NewRouter(),
		logger:  logger,
		version: version,
	}

	h.router.Use(requestID)
	h.router.Use(requestLogger(logger))
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Get("/", h.Status)
	h.router.Get("/health", h.HealthCheck)
	h.router.Post("/recommend", h.Recommend)
}

// Status is the root/liveness endpoint, reporting the model version.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":       "Linguistic music recommender API running",
		"model_version": h.version,
	})
}

// HealthCheck is a simple endpoint to verify the API is up.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
