// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the run-control HTTP surface: submit a research
// run, poll its status, and download the finished report.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pdiddy/litreview/internal/registry"
	"github.com/pdiddy/litreview/internal/store"
	"github.com/pdiddy/litreview/pkg/types"
)

// Runner executes one research pipeline run to completion.
type Runner interface {
	Run(ctx context.Context, topic string, paperLimit int) *types.ResearchState
}

// Server is the run-control HTTP server.
type Server struct {
	registry   *registry.Registry
	store      *store.Store
	runner     Runner
	httpServer *http.Server
}

// New builds the server. store may be nil; run history is then kept only in
// memory for the process lifetime.
func New(cfg types.ServerConfig, runner Runner, reg *registry.Registry, st *store.Store) *Server {
	s := &Server{
		registry: reg,
		store:    st,
		runner:   runner,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Router builds the chi router. Exposed for handler tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	// Browser clients poll from anywhere, including file:// pages.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/runs", s.handleSubmitRun)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{runID}", s.handleGetRun)
	r.Get("/runs/{runID}/report", s.handleGetReport)
	return r
}

// Start runs the server until it is shut down or fails.
func (s *Server) Start() error {
	zap.L().Info("HTTP server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests.
// Running pipelines are not cancelled; they finish in the background.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// execute drives one run to its terminal state. It runs in its own
// goroutine with a background context so a client disconnect cannot abort
// the pipeline.
func (s *Server) execute(id, topic string, paperLimit int) {
	s.registry.Start(id)
	st := s.runner.Run(context.Background(), topic, paperLimit)
	run := s.registry.Finish(id, st)

	if s.store != nil && run != nil {
		if err := s.store.RecordRun(run); err != nil {
			zap.L().Error("recording run history failed",
				zap.String("run_id", id),
				zap.Error(err))
		}
	}
}
