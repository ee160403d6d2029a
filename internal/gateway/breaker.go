package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerGateway trips after a run of consecutive provider failures and
// rejects calls until the timeout has passed
type BreakerGateway struct {
	next    Gateway
	breaker *gobreaker.CircuitBreaker
}

// NewBreaker wraps next with a circuit breaker that opens after threshold
// consecutive failures and half-opens after timeout
func NewBreaker(next Gateway, threshold uint32, timeout time.Duration, log *zap.Logger) *BreakerGateway {
	if log == nil {
		log = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// unsupported modalities do not count against the provider
			return err == nil || errors.Is(err, ErrUnsupportedModality)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker changed state",
				zap.String("provider", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	}

	return &BreakerGateway{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Invoke forwards the request unless the circuit is open
func (b *BreakerGateway) Invoke(ctx context.Context, req *Request) (*Response, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Invoke(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s unavailable: %w", b.next.Name(), err)
		}
		return nil, err
	}
	return result.(*Response), nil
}

// Name returns the wrapped provider name
func (b *BreakerGateway) Name() string {
	return b.next.Name()
}

// State reports the current breaker state
func (b *BreakerGateway) State() gobreaker.State {
	return b.breaker.State()
}
