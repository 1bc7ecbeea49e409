package application

import (
	"context"
	"errors"
	"time"

	"cbrates-service/internal/domain"
)

var errBoom = errors.New("connection refused")

type fakeSource struct {
	name  string
	q     domain.RateQuote
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(context.Context) (domain.RateQuote, error) {
	f.calls++
	if f.err != nil {
		return domain.RateQuote{}, f.err
	}
	return f.q, nil
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

// fracRand maps every draw to a fixed fraction of the requested range.
type fracRand struct{ frac float64 }

func (r fracRand) Uniform(low, high float64) float64 { return low + r.frac*(high-low) }

type attemptRec struct {
	strategy string
	outcome  string
}

type recordObserver struct {
	attempts       []attemptRec
	resolvedSource string
	resolvedReal   bool
	resolvedCount  int
}

func (o *recordObserver) Attempt(strategy, outcome string, _ time.Duration) {
	o.attempts = append(o.attempts, attemptRec{strategy: strategy, outcome: outcome})
}

func (o *recordObserver) Resolved(source string, real bool, _ time.Duration) {
	o.resolvedSource = source
	o.resolvedReal = real
	o.resolvedCount++
}

func realQuote(source string, rate float64) domain.RateQuote {
	return domain.RateQuote{
		Currency:   "USD",
		Rate:       domain.Round2(rate),
		RawRate:    rate,
		AsOfDate:   "2025-06-02",
		Source:     source,
		IsRealData: true,
	}
}

func syntheticQuote(rate float64) domain.RateQuote {
	q := realQuote("synthetic", rate)
	q.IsRealData = false
	return q
}
