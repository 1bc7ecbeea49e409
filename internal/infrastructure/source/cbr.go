package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"cbrates-service/internal/application"
	"cbrates-service/internal/domain"
	"cbrates-service/internal/infrastructure/httpx"
)

// valCurs mirrors the CBR XML_daily feed. Decimal fields use a locale comma
// separator and the document is served as windows-1251.
type valCurs struct {
	XMLName xml.Name `xml:"ValCurs"`
	Date    string   `xml:"Date,attr"`
	Valutes []valute `xml:"Valute"`
}

type valute struct {
	CharCode string `xml:"CharCode"`
	Nominal  string `xml:"Nominal"`
	Value    string `xml:"Value"`
	Previous string `xml:"Previous"`
}

// CBR acquires the rate from the central bank's daily XML feed. The same
// type backs both the direct strategy and its proxy-relayed variants; only
// the client's transport and the strategy name differ.
type CBR struct {
	name     string
	url      string
	currency string
	client   *httpx.Client
	rnd      application.Rand
	clock    application.Clock
	// changeJitter bounds the sampled change when the feed carries no
	// previous value.
	changeJitter float64
}

func NewCBR(name, rawURL, currency string, client *httpx.Client, rnd application.Rand, clock application.Clock, changeJitter float64) *CBR {
	return &CBR{
		name:         name,
		url:          rawURL,
		currency:     currency,
		client:       client,
		rnd:          rnd,
		clock:        clock,
		changeJitter: changeJitter,
	}
}

var _ application.RateSource = (*CBR)(nil)

func (s *CBR) Name() string { return s.name }

func (s *CBR) Fetch(ctx context.Context) (domain.RateQuote, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%s: %w", s.name, err)
	}
	defer resp.Body.Close()

	dec := xml.NewDecoder(resp.Body)
	dec.CharsetReader = charsetReader
	var doc valCurs
	if err := dec.Decode(&doc); err != nil {
		return domain.RateQuote{}, fmt.Errorf("%s: decode: %w: %w", s.name, application.ErrParse, err)
	}

	for _, v := range doc.Valutes {
		if v.CharCode != s.currency {
			continue
		}
		return s.quoteFromRecord(v, doc.Date)
	}
	return domain.RateQuote{}, fmt.Errorf("%s: %s: %w", s.name, s.currency, application.ErrFieldNotFound)
}

func (s *CBR) quoteFromRecord(v valute, feedDate string) (domain.RateQuote, error) {
	value, err := parseDecimal(v.Value)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%s: value %q: %w", s.name, v.Value, err)
	}
	nominal, err := parseDecimal(v.Nominal)
	if err != nil || nominal <= 0 {
		return domain.RateQuote{}, fmt.Errorf("%s: nominal %q: %w", s.name, v.Nominal, application.ErrParse)
	}
	rate := value / nominal

	q := domain.RateQuote{
		Currency:   s.currency,
		Rate:       domain.Round2(rate),
		RawRate:    rate,
		AsOfDate:   feedDateISO(feedDate, s.clock),
		Source:     s.name,
		IsRealData: true,
	}

	if prev, err := parseDecimal(v.Previous); err == nil && prev > 0 {
		prevRate := prev / nominal
		q.Change = domain.Round2(rate - prevRate)
		q.ChangePercent = domain.Round2((rate - prevRate) / prevRate * 100)
		return q, nil
	}
	// No observed reference: sample the delta, keep the rate trusted.
	q.Change, q.ChangePercent = sampleChange(s.rnd, rate, s.changeJitter)
	return q, nil
}

// parseDecimal handles the feed's comma decimal separator.
func parseDecimal(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, application.ErrParse
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", application.ErrParse, err)
	}
	return f, nil
}

// feedDateISO converts the feed's DD.MM.YYYY date attribute to ISO, falling
// back to the resolution date.
func feedDateISO(feedDate string, clock application.Clock) string {
	if t, err := time.Parse("02.01.2006", strings.TrimSpace(feedDate)); err == nil {
		return t.Format("2006-01-02")
	}
	return clock.Now().Format("2006-01-02")
}

// sampleChange draws a symmetric delta and derives the percentage against
// the implied reference value.
func sampleChange(rnd application.Rand, rate, jitter float64) (change, pct float64) {
	change = rnd.Uniform(-jitter, jitter)
	if ref := rate - change; ref != 0 {
		pct = change / ref * 100
	}
	return domain.Round2(change), domain.Round2(pct)
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8":
		return input, nil
	case "windows-1251":
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", charset)
}
