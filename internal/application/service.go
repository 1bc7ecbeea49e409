package application

import (
	"context"

	"cbrates-service/internal/domain"
)

// RatesService composes quote resolution with history synthesis. It is the
// whole surface the HTTP layer consumes.
type RatesService struct {
	resolver    *Resolver
	synthesizer *Synthesizer
	historyDays int
}

func NewRatesService(r *Resolver, s *Synthesizer, historyDays int) *RatesService {
	if historyDays <= 0 {
		historyDays = 30
	}
	return &RatesService{resolver: r, synthesizer: s, historyDays: historyDays}
}

// CurrentQuote resolves the current rate. It never fails; provenance is in
// the quote's Source and IsRealData fields.
func (s *RatesService) CurrentQuote(ctx context.Context) domain.RateQuote {
	return s.resolver.Resolve(ctx)
}

// History resolves the current rate and synthesizes the trailing series
// anchored on it. days <= 0 selects the configured default length.
func (s *RatesService) History(ctx context.Context, days int) (domain.RateQuote, []domain.HistoryPoint) {
	if days <= 0 {
		days = s.historyDays
	}
	q := s.resolver.Resolve(ctx)
	return q, s.synthesizer.Series(q.RawRate, days)
}

// Summary resolves a quote, synthesizes the default-length series and
// reduces it to period statistics.
func (s *RatesService) Summary(ctx context.Context) domain.Summary {
	q, points := s.History(ctx, 0)
	return domain.Summarize(q.Currency, points)
}
