package handler

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tasklift/backend/internal/limiter"
	"github.com/tasklift/backend/internal/metrics"
)

// SecurityHeaders adds security response headers for the API.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// RateLimit enforces the submission rate policy before the handler runs.
// Rejections carry a Retry-After header so the client can surface a
// concrete wait time.
func RateLimit(l limiter.Limiter, trustedProxyCount int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ClientIP(r, trustedProxyCount)

		d := l.Check(r.Context(), id)
		if !d.Allowed {
			metrics.RateLimited.Inc()
			slog.Info("rate limited", "identifier", id, "reason", d.Reason, "retry_after", d.RetryAfter)

			w.Header().Set("Retry-After", retryAfterSeconds(d.RetryAfter))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// ClientIP extracts the best available client identifier, reading from the
// rightmost trusted proxy position in X-Forwarded-For to prevent spoofing.
// With nothing usable it falls back to a generic bucket so anonymous
// traffic still shares one limit.
func ClientIP(r *http.Request, trustedProxyCount int) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		idx := len(parts) - trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			if ip := strings.TrimSpace(parts[idx]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
