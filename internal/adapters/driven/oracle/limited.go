package oracle

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
)

// Ensure Limited implements the interface.
var _ driven.Oracle = (*Limited)(nil)

// LimitConfig holds the throttling applied to oracle calls.
type LimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// Burst is the maximum burst size.
	Burst int
	// CallTimeout bounds every single call, including the wait for a token.
	CallTimeout time.Duration
}

// Limited throttles an oracle with a token bucket and bounds each call.
type Limited struct {
	next    driven.Oracle
	limiter *rate.Limiter
	timeout time.Duration
}

// NewLimited wraps next. Non-positive rates fall back to the defaults.
func NewLimited(next driven.Oracle, cfg LimitConfig) *Limited {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = domain.DefaultOracleRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = domain.DefaultOracleBurst
	}
	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		timeout: cfg.CallTimeout,
	}
}

// Infer waits for a token, then forwards the call.
func (l *Limited) Infer(ctx context.Context, prompt string, image *domain.Image) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.next.Infer(ctx, prompt, image)
}

// ModelName returns the wrapped model name.
func (l *Limited) ModelName() string {
	return l.next.ModelName()
}

// Ping is not rate limited.
func (l *Limited) Ping(ctx context.Context) error {
	return l.next.Ping(ctx)
}

// Close closes the wrapped oracle.
func (l *Limited) Close() error {
	return l.next.Close()
}
