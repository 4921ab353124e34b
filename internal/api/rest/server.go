package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. live may be nil, in which case
// /live is computed per request.
func NewServer(port string, dash Dashboard, live LiveSnapshots, allowedOrigins []string) *Server {
	handler := NewHandler(dash, live)

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           NewRouter(handler, allowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter builds the routes served by the API
func NewRouter(handler *Handler, allowedOrigins []string) *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(chimiddleware.RequestID)
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware(allowedOrigins))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/team", handler.GetTeam).Methods("GET")
	api.HandleFunc("/live", handler.GetLive).Methods("GET")
	api.HandleFunc("/schedule", handler.GetSchedule).Methods("GET")
	api.HandleFunc("/roster", handler.GetRoster).Methods("GET")
	api.HandleFunc("/history", handler.GetHistory).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")

	return router
}

// SetCacheHealth reports the cache backend on /health
func (s *Server) SetCacheHealth(check func(context.Context) error) {
	s.handler.SetCacheHealth(check)
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
