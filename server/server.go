//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the assistant and its evaluation harness over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ringside-ai/ringside/evaluation"
	"github.com/ringside-ai/ringside/log"
)

// Server wraps an evaluation runner behind a JSON HTTP API.
type Server struct {
	runner  *evaluation.Runner
	dataset []evaluation.DatasetItem
	router  *mux.Router
	handler http.Handler
}

// Option configures the Server instance.
type Option func(*Server)

// WithDataset sets the dataset used by the batch evaluation endpoint.
// If omitted, the embedded default dataset is used.
func WithDataset(items []evaluation.DatasetItem) Option {
	return func(s *Server) { s.dataset = items }
}

// New creates a server around the given runner.
func New(runner *evaluation.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		dataset: evaluation.DefaultDataset(),
		router:  mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()

	// The cors handler wraps the router rather than being registered as
	// mux middleware: mux runs middleware only on matched routes, and all
	// routes here are method-restricted, so an OPTIONS preflight would
	// never reach middleware.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(s.router)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Start runs the HTTP server on addr. It blocks until the server stops.
func (s *Server) Start(addr string) error {
	log.Infof("ringside HTTP API listening on %s", addr)
	return http.ListenAndServe(addr, s.handler)
}

// registerRoutes sets up all REST endpoints.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/api/v1/query", s.handleQuery).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/session", s.handleSession).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/healthz", s.handleHealthz).Methods(http.MethodGet)
}

type queryRequest struct {
	Query string `json:"query"`
}

// handleQuery answers one query and returns the scored record.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	record := s.runner.Step(r.Context(), req.Query)
	s.writeJSON(w, record)
}

// handleEvaluate runs the batch evaluation over the configured dataset.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	report := s.runner.RunBatch(r.Context(), s.dataset)
	s.writeJSON(w, report)
}

type sessionResponse struct {
	Records []*evaluation.QueryRecord `json:"records"`
	Summary evaluation.SessionSummary `json:"summary"`
}

// handleSession returns the session log and its aggregate summary.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sessionLog := s.runner.SessionLog()
	s.writeJSON(w, sessionResponse{
		Records: sessionLog.Records(),
		Summary: sessionLog.Summary(),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("write JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Errorf("write JSON error response: %v", err)
	}
}
