// Package api exposes the generated report artifacts over HTTP.
//
// The server is intentionally thin: the pipeline writes everything to
// disk, and the API serves those files to the static site (or any
// other consumer) with CORS enabled.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/openequity/equitypages/internal/config"
)

// Server serves the pipeline output over HTTP.
type Server struct {
	cfg    *config.Config
	router chi.Router
}

// NewServer builds a server around the given configuration.
func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}
	s.router = s.buildRouter()
	return s
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.API.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/stocks", s.handleStocks)
	r.Get("/api/reports/{symbol}", s.handleReport)

	// The raw output directory is also browseable, so the static site
	// can fetch payloads and rendered pages directly.
	fileServer := http.StripPrefix("/reports/", http.FileServer(http.Dir(s.cfg.Output.ReportsDir)))
	r.Get("/reports/*", fileServer.ServeHTTP)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	s.serveJSONFile(w, r, s.cfg.Output.StocksJSON)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" || strings.ContainsAny(symbol, "/\\") {
		http.Error(w, `{"error":"invalid symbol"}`, http.StatusBadRequest)
		return
	}
	if !strings.HasSuffix(symbol, ".json") {
		symbol += ".json"
	}
	s.serveJSONFile(w, r, filepath.Join(s.cfg.Output.ReportsDir, symbol))
}

func (s *Server) serveJSONFile(w http.ResponseWriter, r *http.Request, path string) {
	if _, err := os.Stat(path); err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, path)
}

// ListenAndServe runs the server until SIGINT or SIGTERM, then shuts
// down gracefully.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.API.Host, s.cfg.API.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("api: listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("api: received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
