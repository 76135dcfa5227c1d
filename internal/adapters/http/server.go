// Package http exposes the weave document renderer as a small HTTP service:
// the preview server behind "weave serve".
package http

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/weave/internal/compiler"
	"github.com/aretw0/weave/internal/logging"
	"github.com/aretw0/weave/pkg/encoders"
	"github.com/aretw0/weave/pkg/ports"
)

const maxDocumentBytes = 1 << 20

// Server renders fragment documents over HTTP.
type Server struct {
	cache   ports.RenderCache
	logger  *slog.Logger
	metrics *metrics
}

// NewHandler creates the preview-server handler. The cache is optional (nil
// disables caching); a nil logger discards.
func NewHandler(cache ports.RenderCache, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		cache:   cache,
		logger:  logger,
		metrics: newMetrics(reg),
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return enableCORS(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.duration.Observe(time.Since(start).Seconds())
	}()

	enc, encName, ok := encoders.ByName(r.URL.Query().Get("encoder"))
	if !ok {
		s.metrics.errors.Inc()
		http.Error(w, "unknown encoder (expected html, markdown, or none)", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		s.metrics.errors.Inc()
		http.Error(w, "request body too large or unreadable", http.StatusBadRequest)
		return
	}

	key := cacheKey(body, encName)
	if s.cache != nil {
		cached, hit, err := s.cache.Get(r.Context(), key)
		if err != nil {
			// Treat cache failures as misses.
			s.logger.Warn("Render cache lookup failed", "err", err)
		} else if hit {
			s.metrics.renders.WithLabelValues(encName).Inc()
			w.Header().Set("Content-Type", contentType(encName))
			w.Header().Set("X-Cache", "HIT")
			w.Write([]byte(cached))
			return
		}
	}

	doc, err := compiler.Parse(body)
	if err != nil {
		s.renderError(w, err)
		return
	}
	builder, err := doc.Build()
	if err != nil {
		s.renderError(w, err)
		return
	}
	out, err := builder.Render(enc)
	if err != nil {
		s.renderError(w, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(r.Context(), key, out); err != nil {
			s.logger.Warn("Render cache store failed", "err", err)
		}
	}

	s.metrics.renders.WithLabelValues(encName).Inc()
	s.logger.Debug("Rendered document", "encoder", encName, "bytes", len(out))
	w.Header().Set("Content-Type", contentType(encName))
	w.Header().Set("X-Cache", "MISS")
	w.Write([]byte(out))
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	s.metrics.errors.Inc()
	s.logger.Info("Rejected document", "err", err)
	http.Error(w, err.Error(), http.StatusUnprocessableEntity)
}

func cacheKey(body []byte, encoder string) string {
	h := sha256.New()
	h.Write(body)
	h.Write([]byte{0})
	h.Write([]byte(encoder))
	return hex.EncodeToString(h.Sum(nil))
}

func contentType(encoder string) string {
	switch encoder {
	case "html":
		return "text/html; charset=utf-8"
	case "markdown":
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
