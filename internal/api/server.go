// Package api serves the matching engine over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/influencer-matcher/internal/matcher"
)

// maxBodyBytes bounds request bodies, uploads included.
const maxBodyBytes = 32 << 20

// Reloader re-reads all configured sources into the engine.
type Reloader func(ctx context.Context) (matcher.IngestResult, error)

// Options configures the router.
type Options struct {
	Engine    *matcher.Engine
	Reload    Reloader // nil disables /api/reload and /api/upload-data
	UploadDir string   // where /api/upload-data stores files
}

type server struct {
	engine    *matcher.Engine
	reload    Reloader
	uploadDir string
}

// NewRouter builds the HTTP handler.
func NewRouter(opts Options) http.Handler {
	s := &server{
		engine:    opts.Engine,
		reload:    opts.Reload,
		uploadDir: opts.UploadDir,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody)
		r.Get("/stats", s.stats)
		r.Post("/reload", s.reloadData)
		r.Post("/upload-data", s.uploadData)
		r.Post("/search-influencer", s.searchInfluencer)
		r.Post("/verify-single", s.verifySingle)
		r.Post("/verify-batch", s.verifyBatch)
		r.Post("/export-results", s.exportResults)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
