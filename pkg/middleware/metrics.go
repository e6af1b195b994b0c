package middleware

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"campusmove/pkg/metrics"
)

var idSegment = regexp.MustCompile(`^([0-9a-fA-F]{24}|[0-9a-fA-F-]{36}|\d+)$`)

// Metrics records request count, latency and in-flight gauge per route.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			metrics.RecordAPIRequest(r.Method, routeLabel(r.URL.Path), strconv.Itoa(wrapped.statusCode), time.Since(start))
		})
	}
}

// routeLabel collapses id-like path segments so label cardinality stays bounded.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if idSegment.MatchString(p) || (i > 0 && (parts[i-1] == "sessions" || parts[i-1] == "clients")) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
