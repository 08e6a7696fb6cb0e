package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/metric"
)

// Headers.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderAPIKey    = "X-Api-Key"
)

const (
	codeRateLimited = "TC-HUB-4290"
	limiterIdleTTL  = 10 * time.Minute
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together. The first one runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// KeyVerifier decides whether a presented API key is accepted.
type KeyVerifier interface {
	VerifyKey(key string) bool
}

type startTimeKey struct{}

// RequestID tags each request with an ID, reusing X-Request-ID when the
// client sent one. log is stored in the request context so handlers can
// use logger.L.
func RequestID(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = "req-" + ulid.Make().String()
			}
			w.Header().Set(HeaderRequestID, requestID)

			ctx := logger.WithRequestID(r.Context(), requestID)
			if log != nil {
				ctx = logger.WithLogger(ctx, log)
			}
			ctx = context.WithValue(ctx, startTimeKey{}, time.Now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Auth rejects requests without an accepted X-Api-Key.
func Auth(verifier KeyVerifier, metrics *metric.Registry, log *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderAPIKey)
			if key == "" || !verifier.VerifyKey(key) {
				metrics.IncAuthFailure()
				log.Warn("authentication failed",
					"request_id", logger.RequestIDFromContext(r.Context()),
					"client_ip", getClientIP(r, false),
					"key_present", key != "",
				)
				writeError(w, r, http.StatusUnauthorized, domain.ErrHubUnauthorized.Code, "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies a token bucket per client IP. Idle buckets are dropped
// after limiterIdleTTL. Forwarding headers pick the bucket only when
// trustProxy is set.
func RateLimit(perSecond float64, burst int, trustProxy bool, metrics *metric.Registry) Middleware {
	var mu sync.Mutex
	limiters := cache.New(limiterIdleTTL, limiterIdleTTL)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		if l, ok := limiters.Get(ip); ok {
			limiters.SetDefault(ip, l)
			return l.(*rate.Limiter)
		}
		l := rate.NewLimiter(rate.Limit(perSecond), burst)
		limiters.SetDefault(ip, l)
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(getClientIP(r, trustProxy)).Allow() {
				metrics.IncRateLimited()
				w.Header().Set("Retry-After", "1")
				writeError(w, r, http.StatusTooManyRequests, codeRateLimited, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Audit logs every request and records request metrics.
func Audit(log *slog.Logger, metrics *metric.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			startTime, ok := r.Context().Value(startTimeKey{}).(time.Time)
			if !ok {
				startTime = time.Now()
			}
			duration := time.Since(startTime)

			path := routePath(r)
			metrics.RecordRequest(r.Method, path, strconv.Itoa(wrapped.statusCode))
			metrics.ObserveRequestDuration(r.Method, path, duration.Seconds())

			attrs := []any{
				"request_id", logger.RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"client_ip", getClientIP(r, false),
			}

			switch {
			case wrapped.statusCode >= 500:
				log.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				log.Warn("request completed with client error", attrs...)
			default:
				log.Info("request completed", attrs...)
			}
		})
	}
}

// Recover turns panics into 500 responses.
func Recover(log *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						"request_id", logger.RequestIDFromContext(r.Context()),
						"error", err,
						"path", r.URL.Path,
					)
					writeError(w, r, http.StatusInternalServerError, domain.ErrHubServerError.Code, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter captures the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// routePath is the matched mux pattern without its method, so metric
// labels stay bounded.
func routePath(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}

// writeError writes a JSON error body of the form {code, message, request_id}.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":       code,
		"message":    message,
		"request_id": logger.RequestIDFromContext(r.Context()),
	})
}

// getClientIP extracts the client IP from the request. X-Forwarded-For and
// X-Real-IP are honored only with trustProxy, since any client can set them.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if ip := strings.TrimSpace(parts[0]); ip != "" {
				return ip
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	// SplitHostPort handles IPv6 addresses like [::1]:8080.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
