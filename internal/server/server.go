package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/koustreak/filedrop/internal/filestore"
	"github.com/koustreak/filedrop/internal/logger"
)

// Server owns the HTTP listener of the file API.
type Server struct {
	httpServer *http.Server
	cfg        *Config
	log        *logger.Logger
}

// New builds the router over store and the http.Server around it.
func New(cfg *Config, store filestore.Store, log *logger.Logger) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}

	handler, err := NewRouter(cfg, store, log)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		cfg:        cfg,
		log:        log.Component("server"),
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving requests until Shutdown is called.
// A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.Infof("server starting on port %s (upload size limit %s)", s.cfg.Port, s.cfg.MaxUploadSize)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
