package narrative

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/logging"
	"example.com/supplementstack/internal/observability"
)

// BreakerSettings tunes the circuit around a Describer.
type BreakerSettings struct {
	Name string
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before probing again.
	OpenTimeout time.Duration
}

// Breaker sheds Describe calls while the wrapped describer keeps failing.
type Breaker struct {
	next Describer
	cb   *gobreaker.CircuitBreaker[string]
}

// NewBreaker wraps next in a circuit breaker.
func NewBreaker(next Describer, s BreakerSettings) *Breaker {
	if s.Name == "" {
		s.Name = "narrative"
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	logger := logging.WithComponent("narrative_breaker")
	observability.SetBreakerState(s.Name, stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("narrative circuit state changed")
			observability.SetBreakerState(name, stateValue(to))
		},
	})
	return &Breaker{next: next, cb: cb}
}

// Describe implements Describer. While open it fails fast with gobreaker.ErrOpenState.
func (b *Breaker) Describe(ctx context.Context, stack domain.RecommendationStack, profile domain.NormalizedProfile) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.Describe(ctx, stack, profile)
	})
}

// State reports the current circuit state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// IsCircuitOpen reports whether err was returned because the breaker shed the call.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
