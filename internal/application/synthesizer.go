package application

import (
	"math"
	"time"

	"cbrates-service/internal/domain"
)

// SynthParams tune the random walk used to fabricate a trailing series
// around a resolved rate. The series is a presentation aid, not a model:
// only length, ordering and the endpoint are deterministic.
type SynthParams struct {
	// Band is the maximum deviation of any point from the anchor.
	Band float64
	// WeekdayVol and WeekendVol bound the uniform daily step; weekends move
	// less, mirroring lower trading activity.
	WeekdayVol float64
	WeekendVol float64
	// DriftFactor scales the anchor into a constant per-day trend term.
	DriftFactor float64
}

// Synthesizer fabricates a plausible trailing price series anchored on one
// resolved rate.
type Synthesizer struct {
	params SynthParams
	clock  Clock
	rnd    Rand
}

type SynthOption func(*Synthesizer)

func WithSynthClock(c Clock) SynthOption {
	return func(s *Synthesizer) { s.clock = c }
}

func WithSynthRand(r Rand) SynthOption {
	return func(s *Synthesizer) { s.rnd = r }
}

func NewSynthesizer(params SynthParams, opts ...SynthOption) *Synthesizer {
	s := &Synthesizer{params: params}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.rnd == nil {
		s.rnd = NewLockedRand(time.Now().UnixNano())
	}
	return s
}

// Series returns exactly days points, oldest first, ending today. The first
// and last points are pinned to the anchor at display precision; interior
// points random-walk within params.Band of the anchor.
func (s *Synthesizer) Series(anchor float64, days int) []domain.HistoryPoint {
	if days <= 0 {
		return nil
	}

	today := s.clock.Now()
	drift := anchor * s.params.DriftFactor
	points := make([]domain.HistoryPoint, 0, days)

	// Clamp bounds are rounded inward so the display-rounded price can never
	// land outside the band, whatever precision the anchor carries.
	hi := math.Floor((anchor+s.params.Band)*100) / 100
	lo := math.Ceil((anchor-s.params.Band)*100) / 100

	price := domain.Round2(anchor)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -(days - 1 - i))
		if i > 0 {
			vol := s.params.WeekendVol
			if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
				vol = s.params.WeekdayVol
			}
			price += s.rnd.Uniform(-vol, vol) + drift
			if price > hi {
				price = hi
			} else if price < lo {
				price = lo
			}
		}
		if i == days-1 {
			// Today is the resolved quote, never a walk value.
			price = domain.Round2(anchor)
		}
		points = append(points, domain.HistoryPoint{
			Date:        date.Format("2006-01-02"),
			DisplayDate: date.Format("02.01"),
			Price:       domain.Round2(price),
		})
	}
	return points
}
