// Package server exposes stored flow graphs over HTTP.
//
// Routes:
//
//	PUT    /graphs/{name}                  store a JSON definition
//	GET    /graphs                         list stored graph metadata
//	GET    /graphs/{name}                  fetch the stored definition
//	GET    /graphs/{name}/export/{format}  export as json, dot, yuml or svg
//	DELETE /graphs/{name}                  remove a stored graph
//
// Uploaded definitions are validated by loading them into a graph before
// they are stored; malformed bodies are rejected with 400 and never
// partially stored. Errors are returned as {"error": {"code", "message"}}.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowkit/flowkit/pkg/cache"
	"github.com/flowkit/flowkit/pkg/store"
)

// maxDefinitionBytes bounds uploaded definition bodies.
const maxDefinitionBytes = 4 << 20

// Server serves the graph storage and export API.
type Server struct {
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
}

// New creates a server over the given store and artifact cache.
// A nil cache disables artifact caching; a nil logger uses log.Default().
func New(st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, cache: c, logger: logger}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/graphs", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Put("/{name}", s.handlePut)
		r.Get("/{name}", s.handleGet)
		r.Delete("/{name}", s.handleDelete)
		r.Get("/{name}/export/{format}", s.handleExport)
	})

	return r
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
