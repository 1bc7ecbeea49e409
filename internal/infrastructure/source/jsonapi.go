package source

import (
	"context"
	"fmt"
	"strings"

	"cbrates-service/internal/application"
	"cbrates-service/internal/domain"
	"cbrates-service/internal/infrastructure/httpx"
)

// JSONAPI acquires the rate from a third-party JSON feed. Each configured
// instance declares the key path at which its response carries the target
// rate, e.g. "rates.RUB" or "Valute.USD.Value".
type JSONAPI struct {
	name         string
	url          string
	path         []string
	currency     string
	client       *httpx.Client
	rnd          application.Rand
	clock        application.Clock
	changeJitter float64
}

func NewJSONAPI(name, rawURL, path, currency string, client *httpx.Client, rnd application.Rand, clock application.Clock, changeJitter float64) *JSONAPI {
	return &JSONAPI{
		name:         name,
		url:          rawURL,
		path:         strings.Split(path, "."),
		currency:     currency,
		client:       client,
		rnd:          rnd,
		clock:        clock,
		changeJitter: changeJitter,
	}
}

var _ application.RateSource = (*JSONAPI)(nil)

func (s *JSONAPI) Name() string { return s.name }

func (s *JSONAPI) Fetch(ctx context.Context) (domain.RateQuote, error) {
	var doc any
	if err := s.client.GetJSON(ctx, s.url, &doc); err != nil {
		return domain.RateQuote{}, fmt.Errorf("%s: %w", s.name, err)
	}

	rate, err := lookupNumber(doc, s.path)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%s: %s: %w", s.name, strings.Join(s.path, "."), err)
	}
	if rate <= 0 {
		return domain.RateQuote{}, fmt.Errorf("%s: non-positive rate %v: %w", s.name, rate, application.ErrParse)
	}

	q := domain.RateQuote{
		Currency:   s.currency,
		Rate:       domain.Round2(rate),
		RawRate:    rate,
		AsOfDate:   s.clock.Now().Format("2006-01-02"),
		Source:     s.name,
		IsRealData: true,
	}
	// These feeds expose no previous value, so the delta is sampled.
	q.Change, q.ChangePercent = sampleChange(s.rnd, rate, s.changeJitter)
	return q, nil
}

// lookupNumber walks nested JSON objects along path and returns the numeric
// leaf. A missing key is a missing-field failure; a non-object intermediate
// or non-numeric leaf is a parse failure.
func lookupNumber(doc any, path []string) (float64, error) {
	cur := doc
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return 0, application.ErrParse
		}
		cur, ok = obj[key]
		if !ok {
			return 0, application.ErrFieldNotFound
		}
	}
	n, ok := cur.(float64)
	if !ok {
		return 0, application.ErrParse
	}
	return n, nil
}
