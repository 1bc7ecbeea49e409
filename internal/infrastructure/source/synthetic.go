package source

import (
	"context"

	"cbrates-service/internal/application"
	"cbrates-service/internal/domain"
)

// Synthetic is the terminal fallback: a quote anchored at the last known
// good rate with a small jitter for display variety. It never fails, which
// is what lets the resolver promise a quote to every caller.
type Synthetic struct {
	base         float64
	jitter       float64
	changeJitter float64
	currency     string
	rnd          application.Rand
	clock        application.Clock
}

func NewSynthetic(base, jitter, changeJitter float64, currency string, rnd application.Rand, clock application.Clock) *Synthetic {
	return &Synthetic{
		base:         base,
		jitter:       jitter,
		changeJitter: changeJitter,
		currency:     currency,
		rnd:          rnd,
		clock:        clock,
	}
}

var _ application.RateSource = (*Synthetic)(nil)

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Fetch(context.Context) (domain.RateQuote, error) {
	rate := s.base + s.rnd.Uniform(-s.jitter, s.jitter)
	q := domain.RateQuote{
		Currency:   s.currency,
		Rate:       domain.Round2(rate),
		RawRate:    rate,
		AsOfDate:   s.clock.Now().Format("2006-01-02"),
		Source:     s.Name(),
		IsRealData: false,
	}
	q.Change, q.ChangePercent = sampleChange(s.rnd, rate, s.changeJitter)
	return q, nil
}
