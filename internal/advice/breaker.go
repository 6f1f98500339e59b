package advice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Breaker stops calling a failing provider for a cooldown period
type Breaker struct {
	next Service
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker trips after failures consecutive errors and probes again after cooldown
func NewBreaker(name string, next Service, failures uint32, cooldown time.Duration, log zerolog.Logger) *Breaker {
	if failures == 0 {
		failures = 1
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Advice provider breaker changed state")
		},
	}

	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Ask(ctx context.Context, req Request) (string, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Ask(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// State is closed, half-open or open
func (b *Breaker) State() string {
	return b.cb.State().String()
}
