// Package retry provides the bounded fixed-delay retry wrapper placed around
// every generation stage call.
package retry

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Policy bounds a retried operation
type Policy struct {
	MaxAttempts int           // total attempts, including the first
	Delay       time.Duration // fixed wait between attempts
}

// DefaultPolicy returns three attempts one second apart
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       time.Second,
	}
}

// Do invokes op until it succeeds or MaxAttempts invocations have failed.
// The error of the last attempt is returned unchanged. There is no backoff
// and no jitter.
func Do[T any](ctx context.Context, p Policy, log *zap.Logger, op func(context.Context) (T, error)) (T, error) {
	if log == nil {
		log = zap.NewNop()
	}
	attempts := max(p.MaxAttempts, 1)

	var zero T
	for attempt := 1; ; attempt++ {
		start := time.Now()
		result, err := op(ctx)
		log.Debug("Attempt finished",
			zap.Int("attempt", attempt),
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("ok", err == nil))
		if err == nil {
			return result, nil
		}
		if attempt >= attempts {
			return zero, err
		}

		log.Info("Retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("delay", p.Delay),
			zap.Error(err))

		if err := Sleep(ctx, p.Delay); err != nil {
			return zero, err
		}
	}
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
