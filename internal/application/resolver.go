package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cbrates-service/internal/domain"
)

// Resolver walks an ordered list of rate sources and returns the first
// usable quote. Exhaustion of the list is not an error: the resolver
// degrades to the fallback source, which by contract never fails, so
// Resolve always hands the caller a quote with a positive rate.
type Resolver struct {
	sources    []RateSource
	fallback   RateSource
	lastResort domain.RateQuote
	log        *zap.Logger
	obs        Observer
}

type ResolverOption func(*Resolver)

func WithResolverLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.log = l }
}

func WithObserver(o Observer) ResolverOption {
	return func(r *Resolver) { r.obs = o }
}

// WithLastResort sets the quote substituted if the fallback source itself
// fails. Only Currency, Rate and RawRate are taken from it; provenance is
// filled in at resolution time.
func WithLastResort(q domain.RateQuote) ResolverOption {
	return func(r *Resolver) { r.lastResort = q }
}

// NewResolver builds a resolver over sources in priority order. fallback is
// tried only after every source has declined.
func NewResolver(sources []RateSource, fallback RateSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{sources: sources, fallback: fallback}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.lastResort.Rate <= 0 {
		// Mirrors the stock fallback configuration.
		r.lastResort = domain.RateQuote{Currency: "USD", Rate: 92.50, RawRate: 92.50}
	}
	return r
}

// Resolve tries each source in order and short-circuits on the first usable
// quote. Individual failures are recorded and swallowed.
func (r *Resolver) Resolve(ctx context.Context) domain.RateQuote {
	start := time.Now()
	for _, src := range r.sources {
		if q, ok := r.attempt(ctx, src); ok {
			r.resolved(q, time.Since(start))
			return q
		}
	}

	q, err := r.fallback.Fetch(ctx)
	if err != nil || q.Rate <= 0 {
		// The synthetic source has no failure mode; if that contract is ever
		// broken the caller still gets a usable quote.
		r.log.Error("fallback source failed", zap.String("strategy", r.fallback.Name()), zap.Error(err))
		q = domain.RateQuote{
			Currency:   r.lastResort.Currency,
			Rate:       r.lastResort.Rate,
			RawRate:    r.lastResort.RawRate,
			AsOfDate:   time.Now().Format("2006-01-02"),
			Source:     r.fallback.Name(),
			IsRealData: false,
		}
	}
	r.resolved(q, time.Since(start))
	return q
}

func (r *Resolver) attempt(ctx context.Context, src RateSource) (domain.RateQuote, bool) {
	begin := time.Now()
	q, err := src.Fetch(ctx)
	elapsed := time.Since(begin)

	if err == nil && q.Rate <= 0 {
		err = ErrParse
	}
	outcome := ClassifyOutcome(err)
	if r.obs != nil {
		r.obs.Attempt(src.Name(), outcome, elapsed)
	}
	if err != nil {
		r.log.Warn("rate source declined",
			zap.String("strategy", src.Name()),
			zap.String("outcome", outcome),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return domain.RateQuote{}, false
	}

	r.log.Info("rate source answered",
		zap.String("strategy", src.Name()),
		zap.Float64("rate", q.Rate),
		zap.Duration("elapsed", elapsed),
	)
	return q, true
}

func (r *Resolver) resolved(q domain.RateQuote, elapsed time.Duration) {
	if r.obs != nil {
		r.obs.Resolved(q.Source, q.IsRealData, elapsed)
	}
	if !q.IsRealData {
		r.log.Warn("all live sources exhausted, using synthetic quote",
			zap.Float64("rate", q.Rate),
			zap.Duration("elapsed", elapsed),
		)
	}
}
