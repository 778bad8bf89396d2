package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/tramita"
	"github.com/aretw0/tramita/internal/dto"
	"github.com/aretw0/tramita/pkg/domain"
)

// Engine defines the interface for the tramita resolution core.
type Engine interface {
	AvailableSteps(ctx context.Context, doc domain.Document) ([]domain.Step, error)
	AvailableUsers(ctx context.Context, doc domain.Document, stepID int64) ([]domain.User, error)
	Tree(ctx context.Context, history []domain.ExecutionRecord) (*domain.TreeResult, error)
	Timeline(ctx context.Context, doc domain.Document, history []domain.ExecutionRecord) (*domain.Timeline, error)
}

// Server exposes the engine as a stateless JSON API: every request carries
// the document and its execution history, the metadata comes from the
// engine's source.
type Server struct {
	Engine Engine
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	s := &Server{Engine: engine}
	r := chi.NewRouter()

	r.Use(metricsMiddleware)

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/resolve/steps", s.ResolveSteps)
	r.Post("/resolve/users", s.ResolveUsers)
	r.Post("/tree", s.Tree)
	r.Post("/timeline", s.Timeline)

	return r
}

// resolveRequest is the wire shape shared by the resolution endpoints.
// Document and history arrive in the source system's raw shapes and go
// through the dto normalization.
type resolveRequest struct {
	Document map[string]any `json:"document"`
	History  []any          `json:"history,omitempty"`
	Step     any            `json:"step,omitempty"`
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*resolveRequest, domain.Document, []domain.ExecutionRecord, bool) {
	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, domain.Document{}, nil, false
	}

	doc, err := dto.Document(body.Document)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid document: %v", err), http.StatusBadRequest)
		return nil, domain.Document{}, nil, false
	}

	history, err := dto.History(body.History)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid history: %v", err), http.StatusBadRequest)
		return nil, domain.Document{}, nil, false
	}

	return &body, doc, history, true
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":         "tramita-http",
		"version":     tramita.Version,
		"api_version": "0.1.0",
	})
}

// ResolveSteps handles POST /resolve/steps.
func (s *Server) ResolveSteps(w http.ResponseWriter, r *http.Request) {
	_, doc, _, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	steps, err := s.Engine.AvailableSteps(r.Context(), doc)
	if err != nil {
		http.Error(w, fmt.Sprintf("Resolve error: %v", err), http.StatusInternalServerError)
		return
	}
	resolutions.WithLabelValues("steps").Inc()

	writeJSON(w, map[string]any{
		"steps": steps,
		"count": len(steps),
	})
}

// ResolveUsers handles POST /resolve/users.
func (s *Server) ResolveUsers(w http.ResponseWriter, r *http.Request) {
	body, doc, _, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	stepID, ok := dto.ID(body.Step)
	if !ok {
		http.Error(w, "Invalid or missing step id", http.StatusBadRequest)
		return
	}

	users, err := s.Engine.AvailableUsers(r.Context(), doc, stepID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Resolve error: %v", err), http.StatusInternalServerError)
		return
	}
	resolutions.WithLabelValues("users").Inc()

	writeJSON(w, map[string]any{
		"users": users,
		"count": len(users),
	})
}

// Tree handles POST /tree.
func (s *Server) Tree(w http.ResponseWriter, r *http.Request) {
	_, _, history, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	res, err := s.Engine.Tree(r.Context(), history)
	if err != nil {
		http.Error(w, fmt.Sprintf("Tree error: %v", err), http.StatusInternalServerError)
		return
	}
	resolutions.WithLabelValues("tree").Inc()

	writeJSON(w, res)
}

// Timeline handles POST /timeline.
func (s *Server) Timeline(w http.ResponseWriter, r *http.Request) {
	_, doc, history, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	tl, err := s.Engine.Timeline(r.Context(), doc, history)
	if err != nil {
		http.Error(w, fmt.Sprintf("Timeline error: %v", err), http.StatusInternalServerError)
		return
	}
	resolutions.WithLabelValues("timeline").Inc()

	writeJSON(w, tl)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
	}
}
