package gateway

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// FallbackGateway wraps a primary gateway with a fallback option
type FallbackGateway struct {
	primary  Gateway
	fallback Gateway
	log      *zap.Logger
}

// NewWithFallback creates a gateway that falls back to secondary if primary fails
func NewWithFallback(primary, fallback Gateway, log *zap.Logger) *FallbackGateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackGateway{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// Invoke tries the primary gateway first and the fallback on error. An
// unsupported modality is not retried on the fallback.
func (f *FallbackGateway) Invoke(ctx context.Context, req *Request) (*Response, error) {
	resp, err := f.primary.Invoke(ctx, req)
	if err == nil {
		return resp, nil
	}
	if errors.Is(err, ErrUnsupportedModality) || ctx.Err() != nil {
		return nil, err
	}

	f.log.Warn("Primary provider failed, falling back",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.fallback.Name()),
		zap.Error(err))

	resp, fallbackErr := f.fallback.Invoke(ctx, req)
	if fallbackErr != nil {
		return nil, fmt.Errorf("both providers failed: primary=%v, fallback=%w", err, fallbackErr)
	}
	return resp, nil
}

// Name returns the provider name
func (f *FallbackGateway) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", f.primary.Name(), f.fallback.Name())
}
