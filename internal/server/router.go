package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koustreak/filedrop/internal/filestore"
	"github.com/koustreak/filedrop/internal/logger"
)

// APIVersion prefixes every file and stats route.
const APIVersion = "v1"

// NewRouter wires the file API on top of store:
//
//	GET    /v1/files
//	POST   /v1/files/{name}
//	DELETE /v1/files/{name}
//	GET    /v1/stats/fileUploadSizeLimit
//	GET    /health
func NewRouter(cfg *Config, store filestore.Store, log *logger.Logger) (http.Handler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	maxBytes, err := cfg.MaxUploadBytes()
	if err != nil {
		return nil, err
	}

	httpLog := log.Component("http")
	files := &filesHandler{
		store:     store,
		maxBytes:  maxBytes,
		sizeLimit: cfg.MaxUploadSize,
		log:       httpLog,
	}
	stats := &statsHandler{sizeLimit: cfg.MaxUploadSize}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLog(httpLog))
	r.Use(recoverer(httpLog))
	if cfg.RateLimit.RequestsPerSecond > 0 {
		r.Use(ipRateLimit(newRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})

	r.Route("/"+APIVersion, func(v1 chi.Router) {
		v1.Route("/files", func(f chi.Router) {
			f.Get("/", files.listFiles)
			f.Post("/{name}", files.uploadFile)
			f.Delete("/{name}", files.deleteFile)
		})
		v1.Get("/stats/fileUploadSizeLimit", stats.uploadSizeLimit)
	})

	return r, nil
}
