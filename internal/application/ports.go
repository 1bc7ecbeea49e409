package application

import (
	"context"
	"time"

	"cbrates-service/internal/domain"
)

// RateSource is one configured way of acquiring the current rate: the direct
// central-bank feed, a proxy relay of it, an alternate third-party API, or
// the synthetic fallback. A failed Fetch must be side-effect-free so the
// resolver can simply advance to the next source in the chain.
type RateSource interface {
	Name() string
	Fetch(ctx context.Context) (domain.RateQuote, error)
}

// Observer receives one event per acquisition attempt plus the final
// resolution. Implemented by the metrics layer; a nil implementation is fine.
type Observer interface {
	Attempt(strategy, outcome string, elapsed time.Duration)
	Resolved(source string, real bool, elapsed time.Duration)
}

type Clock interface {
	Now() time.Time
}

// SystemClock is the default wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Rand samples uniformly from [low, high). Injected so history synthesis and
// fallback jitter are reproducible in tests.
type Rand interface {
	Uniform(low, high float64) float64
}
