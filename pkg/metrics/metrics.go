package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusmove_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusmove_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusmove_http_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	// outcome: rented, rental_not_found, unavailable, user_not_found, invalid, error
	RentalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusmove_rentals_total",
			Help: "Rental attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Decrements left in place after a failed user update (sequential mode only).
	RentalPartialWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campusmove_rental_partial_writes_total",
			Help: "Rentals whose availability decrement was not followed by a user update",
		},
	)

	DirectionsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusmove_directions_requests_total",
			Help: "Directions provider requests by provider and status",
		},
		[]string{"provider", "status"},
	)

	DirectionsRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusmove_directions_request_duration_seconds",
			Help:    "Directions provider latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	DirectionsStaleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campusmove_directions_stale_responses_total",
			Help: "Directions responses discarded because a newer request superseded them",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campusmove_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusmove_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	NavigationSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusmove_navigation_sessions_active",
			Help: "Number of live navigation sessions",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusmove_events_published_total",
			Help: "Kafka publishes by topic and result",
		},
		[]string{"topic", "result"},
	)
)

func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordRental(outcome string) {
	RentalsTotal.WithLabelValues(outcome).Inc()
}

func RecordDirectionsRequest(provider, status string, duration time.Duration) {
	DirectionsRequestsTotal.WithLabelValues(provider, status).Inc()
	DirectionsRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func RecordEventPublish(topic string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsPublishedTotal.WithLabelValues(topic, result).Inc()
}
