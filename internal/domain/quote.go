package domain

import "math"

// RateQuote is the resolved result of one acquisition pass.
//
// Rate is rounded for display; RawRate keeps the unrounded value and is the
// anchor for history synthesis. Source and IsRealData carry provenance:
// IsRealData is false only when every live source declined and the quote was
// produced by the synthetic fallback.
type RateQuote struct {
	Currency      string
	Rate          float64
	RawRate       float64
	Change        float64
	ChangePercent float64
	AsOfDate      string
	Source        string
	IsRealData    bool
}

// Round2 rounds to two decimal places, the display precision used everywhere.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
