package server

import (
	"net/http"

	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Handler serves the endpoints once middleware has passed.
	Handler http.Handler

	// Verifier checks X-Api-Key on the command routes.
	Verifier KeyVerifier

	Metrics *metric.Registry
	Logger  logger.Logger

	// RateLimit is the per-client limit in requests per second; zero
	// disables limiting.
	RateLimit float64
	RateBurst int

	// TrustProxy keys the rate limiter on X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

// NewRouter mounts every route with its middleware chain.
func NewRouter(cfg *RouterConfig) http.Handler {
	slogger := logger.Slog(cfg.Logger)

	base := []Middleware{
		Recover(slogger),
		RequestID(cfg.Logger),
	}
	if cfg.RateLimit > 0 {
		// One limiter shared by all routes.
		base = append(base, RateLimit(cfg.RateLimit, cfg.RateBurst, cfg.TrustProxy, cfg.Metrics))
	}
	base = append(base, Audit(slogger, cfg.Metrics))

	public := Chain(cfg.Handler, base...)
	authed := Chain(cfg.Handler, append(base, Auth(cfg.Verifier, cfg.Metrics, slogger))...)

	mux := http.NewServeMux()

	mux.Handle("GET /health", public)
	mux.Handle("GET /metrics", public)

	mux.Handle("POST /command", authed)
	mux.Handle("GET /commands", authed)
	mux.Handle("GET /commands/{id}", authed)

	return mux
}
