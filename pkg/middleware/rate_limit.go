package middleware

import (
	"net/http"
	"time"

	"campusmove/pkg/logger"

	"github.com/go-chi/httprate"
)

// RateLimitByIP limits each client address to requests per window.
func RateLimitByIP(requests int, window time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			rejectRateLimited(w, log, r)
		}),
	)
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request) {
	log.Warn("Rate limit exceeded",
		"request_id", RequestIDFromContext(r.Context()),
		"remote_addr", r.RemoteAddr,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"Rate limit exceeded"}`))
}
