package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	feedDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/feed/domain"
	feedService "github.com/reshetovitsme/discord-thread-digest/internal/modules/feed/service"
	"github.com/reshetovitsme/discord-thread-digest/internal/shared/config"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	sloghttp "github.com/samber/slog-http"
)

// Server exposes the latest thread digest over HTTP
type Server struct {
	cfg         *config.Config
	feedService *feedService.Service
	digests     feedService.DigestSource
	logger      *slog.Logger

	mu     sync.Mutex
	server *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, feedService *feedService.Service, digests feedService.DigestSource) *Server {
	return &Server{
		cfg:         cfg,
		feedService: feedService,
		digests:     digests,
		logger:      slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Enabled reports whether a listen port is configured
func (s *Server) Enabled() bool {
	return s.cfg.HTTPPort != ""
}

// Handler returns the routed handler wrapped in request logging and recovery
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /digest", s.handleDigest)
	mux.HandleFunc("GET /digest/{format}", s.handleFeed)

	handler := sloghttp.Recovery(mux)
	return sloghttp.New(s.logger)(handler)
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Digest server starting", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.mu.Lock()
	s.server = server
	s.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a running server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	digest, err := s.digests.Latest()
	if errors.Is(err, sharedErrors.ErrNoDigest) {
		http.Error(w, "No digest has been built yet", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("Error loading digest", "error", err)
		http.Error(w, "Failed to load digest", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(digest); err != nil {
		s.logger.Error("Error encoding digest", "error", err)
	}
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	format := feedDomain.Format(r.PathValue("format"))
	switch format {
	case feedDomain.FormatRSS, feedDomain.FormatAtom, feedDomain.FormatJSON:
	default:
		http.Error(w, "Unknown feed format", http.StatusNotFound)
		return
	}

	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	out, err := s.feedService.Render(baseURL, format)
	if errors.Is(err, sharedErrors.ErrNoDigest) {
		http.Error(w, "No digest has been built yet", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("Error rendering feed", "format", format, "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
