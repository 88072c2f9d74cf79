package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/actuallystonmai/outfit-service/internal/handler"
	"github.com/actuallystonmai/outfit-service/internal/logging"
)

type Options struct {
	RequestTimeout    time.Duration
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func Setup(h *handler.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	// Routes
	r.Group(func(r chi.Router) {
		if opts.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimitRequests, opts.RateLimitWindow))
		}
		r.Post("/outfits/recommend", h.RecommendOutfit)
	})
	r.Get("/health", healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestID reuses an incoming X-Request-ID or mints one, and exposes it to
// both chi and the logging context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
			r.Header.Set(middleware.RequestIDHeader, id)
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := logging.ContextWithRequestID(r.Context(), id)
		middleware.RequestID(next).ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger := logging.Ctx(r.Context(), logging.Component("http"))
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
