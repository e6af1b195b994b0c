package directions

import (
	"context"
	"errors"
	"fmt"
	"time"

	naverrors "campusmove/internal/navigation/errors"
	"campusmove/pkg/logger"
	"campusmove/pkg/metrics"
	"campusmove/pkg/model"

	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// BreakerProvider guards a Provider with a circuit breaker. Only transport
// and provider-side failures count against the breaker; a route that does not
// exist is a valid answer.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[*model.Leg]
	log  *logger.Logger
}

func NewBreakerProvider(next Provider, settings BreakerSettings, log *logger.Logger) *BreakerProvider {
	name := "directions-" + next.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*model.Leg](gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, naverrors.ErrNoRoute) ||
				errors.Is(err, naverrors.ErrUnsupportedMode) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerProvider{next: next, cb: cb, log: log}
}

func (b *BreakerProvider) Name() string {
	return b.next.Name()
}

func (b *BreakerProvider) Load(ctx context.Context) error {
	return b.next.Load(ctx)
}

func (b *BreakerProvider) Route(ctx context.Context, req Request) (*model.Leg, error) {
	leg, err := b.cb.Execute(func() (*model.Leg, error) {
		return b.next.Route(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", naverrors.ErrProviderUnavailable, err)
	}
	return leg, err
}

func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
