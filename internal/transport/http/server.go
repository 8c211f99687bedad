package http

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"timeslots-service/internal/config"
)

// Server wraps the HTTP server and its routes
type Server struct {
	httpServer *http.Server
}

// NewServer creates and configures the HTTP server
func NewServer(handler *Handler, auth *AuthMiddleware, cfg *config.HTTPConfig) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/entries/{date}", auth.Auth(handler.GetEntry))
	mux.HandleFunc("PUT /api/v1/entries/{date}", auth.Auth(handler.SaveEntry))
	mux.HandleFunc("POST /api/v1/entries/{date}/split", auth.Auth(handler.SplitDay))
	mux.HandleFunc("PATCH /api/v1/entries/{date}/segments/{id}", auth.Auth(handler.UpdateSegment))

	mux.HandleFunc("POST /api/v1/goals", auth.Auth(handler.CreateGoal))
	mux.HandleFunc("GET /api/v1/goals", auth.Auth(handler.ListGoals))
	mux.HandleFunc("DELETE /api/v1/goals/{id}", auth.Auth(handler.DeleteGoal))

	mux.HandleFunc("POST /api/v1/templates", auth.Auth(handler.CaptureTemplate))
	mux.HandleFunc("GET /api/v1/templates", auth.Auth(handler.ListTemplates))
	mux.HandleFunc("POST /api/v1/templates/{id}/apply", auth.Auth(handler.ApplyTemplate))
	mux.HandleFunc("DELETE /api/v1/templates/{id}", auth.Auth(handler.DeleteTemplate))

	mux.HandleFunc("GET /api/v1/analytics", auth.Auth(handler.GetAnalytics))
	mux.HandleFunc("GET /api/v1/analytics/daily", auth.Auth(handler.GetDailyTotals))
	mux.HandleFunc("GET /api/v1/analytics/presets", auth.Auth(handler.GetPresets))

	mux.HandleFunc("GET /api/v1/reminders", auth.Auth(handler.GetReminderSettings))
	mux.HandleFunc("PUT /api/v1/reminders", auth.Auth(handler.UpdateReminderSettings))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var root http.Handler = mux
	root = Logging(root)
	root = RateLimit(60)(root)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      root,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	log.Println("Stopping HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
