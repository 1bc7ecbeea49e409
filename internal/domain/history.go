package domain

// HistoryPoint is one day in a synthesized price series.
type HistoryPoint struct {
	Date        string
	DisplayDate string
	Price       float64
}

// Summary aggregates a series for the stats endpoint.
type Summary struct {
	Currency      string
	Current       float64
	Min           float64
	MinDate       string
	Max           float64
	MaxDate       string
	Avg           float64
	Change        float64
	ChangePercent float64
	From          string
	To            string
}

// Summarize computes min/max/avg and the endpoint-to-endpoint delta of a
// series. Returns the zero Summary for an empty series.
func Summarize(currency string, points []HistoryPoint) Summary {
	if len(points) == 0 {
		return Summary{Currency: currency}
	}

	s := Summary{
		Currency: currency,
		Current:  points[len(points)-1].Price,
		Min:      points[0].Price,
		MinDate:  points[0].DisplayDate,
		Max:      points[0].Price,
		MaxDate:  points[0].DisplayDate,
		From:     points[0].Date,
		To:       points[len(points)-1].Date,
	}
	var sum float64
	for _, p := range points {
		sum += p.Price
		if p.Price < s.Min {
			s.Min, s.MinDate = p.Price, p.DisplayDate
		}
		if p.Price > s.Max {
			s.Max, s.MaxDate = p.Price, p.DisplayDate
		}
	}
	s.Avg = Round2(sum / float64(len(points)))
	s.Change = Round2(points[len(points)-1].Price - points[0].Price)
	if points[0].Price != 0 {
		s.ChangePercent = Round2(s.Change / points[0].Price * 100)
	}
	return s
}
