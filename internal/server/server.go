// Package server exposes the analytics engine as a read-only JSON API for
// a browser renderer.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tiliavir/typed-time-tracker/internal/logger"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
)

// Source provides the working copy. Every request reads it once.
type Source interface {
	Document() (model.Document, error)
	Filter() (model.Filter, error)
}

// Server serves the API.
type Server struct {
	src    Source
	logger *logger.Logger
	router chi.Router

	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	queryDuration   *prometheus.HistogramVec
}

// New builds a server reading from src.
func New(src Source, log *logger.Logger) *Server {
	s := &Server{
		src:    src,
		logger: log.WithComponent("server"),
		router: chi.NewRouter(),
	}
	s.setupMetrics()
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(s.requestLogger)
	s.router.Use(s.instrument)

	s.router.Get("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/types/time", s.handleTypeTime)
		r.Get("/summary", s.handleSummary)
		r.Get("/entries", s.handleEntries)
		r.Get("/types", s.handleTypes)
	})
}

func (s *Server) setupMetrics() {
	s.registry = prometheus.NewRegistry()

	s.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ttt_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	s.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ttt_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	s.queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ttt_aggregation_duration_seconds",
			Help:    "Time spent computing an aggregate",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"query"},
	)

	s.registry.MustRegister(s.requestsTotal, s.requestDuration, s.queryDuration)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.requestsTotal.WithLabelValues(r.Method, path, fmt.Sprintf("%d", status)).Inc()
		s.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
