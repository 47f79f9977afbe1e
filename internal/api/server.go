// Package api provides the read-only HTTP status surface for Gray Logic
// Edge.
//
// Two endpoints exist: a liveness probe and a current-state snapshot of
// every peripheral (last reading, actuator state, calibration flags).
// There is no write path and no authentication; the API serves LAN
// monitoring tools and the installer's browser.
//
// The server follows the same lifecycle pattern as the rest of the agent:
//
//	server, err := api.New(deps)
//	err = server.Run(ctx) // blocks until ctx is cancelled
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-edge/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-edge/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-edge/internal/telemetry"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 5 * time.Second

// BusHealth reports bus connectivity for the health endpoint.
type BusHealth interface {
	IsConnected() bool
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config  config.APIConfig
	Logger  *logging.Logger
	Store   *telemetry.Store
	Bus     BusHealth // may be nil when MQTT is disabled
	Version string
}

// Server is the HTTP status server for Gray Logic Edge.
type Server struct {
	cfg     config.APIConfig
	logger  *logging.Logger
	store   *telemetry.Store
	bus     BusHealth
	version string
	server  *http.Server
}

// New creates a new API server with the given dependencies.
//
// Returns:
//   - *Server: Configured server, not yet listening
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("telemetry store is required")
	}

	return &Server{
		cfg:     deps.Config,
		logger:  deps.Logger.With("component", "api"),
		store:   deps.Store,
		bus:     deps.Bus,
		version: deps.Version,
	}, nil
}

// Run starts the listener and blocks until ctx is cancelled, then shuts
// down gracefully.
//
// Returns:
//   - error: listener failure, or nil on clean shutdown
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.buildRouter(),
		ReadTimeout:  s.cfg.ReadTimeout(),
		WriteTimeout: s.cfg.WriteTimeout(),
		IdleTimeout:  s.cfg.IdleTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	s.logger.Info("status API listening", "addr", s.server.Addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("status API: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("status API shutdown: %w", err)
	}
	s.logger.Info("status API stopped")
	return nil
}

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)
	})

	return r
}

// healthResponse is the body served by the health endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	MQTT    string `json:"mqtt"`
}

// handleHealth serves the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	mqttState := "disabled"
	if s.bus != nil {
		mqttState = "disconnected"
		if s.bus.IsConnected() {
			mqttState = "connected"
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: s.version,
		MQTT:    mqttState,
	})
}

// handleStatus serves the current device snapshot.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// writeJSON encodes a response body with the standard headers.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
