package source_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cbrates-service/internal/application"
	"cbrates-service/internal/infrastructure/source"
)

const cbrXML = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="02.06.2025" name="Foreign Currency Market">
<Valute ID="R01235">
<NumCode>840</NumCode>
<CharCode>USD</CharCode>
<Nominal>1</Nominal>
<Name>US Dollar</Name>
<Value>92,50</Value>
<Previous>92,25</Previous>
</Valute>
<Valute ID="R01239">
<NumCode>978</NumCode>
<CharCode>EUR</CharCode>
<Nominal>1</Nominal>
<Name>Euro</Name>
<Value>99,10</Value>
<Previous>99,40</Previous>
</Valute>
</ValCurs>`

const cbrXMLNominal = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="02.06.2025" name="Foreign Currency Market">
<Valute ID="R01820">
<NumCode>392</NumCode>
<CharCode>JPY</CharCode>
<Nominal>100</Nominal>
<Name>Japanese Yen</Name>
<Value>64,50</Value>
<Previous>64,00</Previous>
</Valute>
</ValCurs>`

const cbrXMLNoPrevious = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="02.06.2025" name="Foreign Currency Market">
<Valute ID="R01235">
<NumCode>840</NumCode>
<CharCode>USD</CharCode>
<Nominal>1</Nominal>
<Name>US Dollar</Name>
<Value>92,50</Value>
</Valute>
</ValCurs>`

func newCBR(rt roundTripFunc, currency string) *source.CBR {
	return source.NewCBR("cbr", "https://www.cbr.ru/scripts/XML_daily.asp", currency,
		client(rt), fracRand{frac: 0.5}, fakeClock{t: testNow}, 0.3)
}

func Test_CBR_ParsesCommaDecimals(t *testing.T) {
	t.Parallel()
	s := newCBR(respond(cbrXML, 200), "USD")

	q, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 92.50, q.Rate)
	require.Equal(t, 92.50, q.RawRate)
	require.True(t, q.IsRealData)
	require.Equal(t, "cbr", q.Source)
	require.Equal(t, "2025-06-02", q.AsOfDate)
}

func Test_CBR_ObservedChangeFromPrevious(t *testing.T) {
	t.Parallel()
	s := newCBR(respond(cbrXML, 200), "USD")

	q, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0.25, q.Change)
	require.Equal(t, 0.27, q.ChangePercent)
}

func Test_CBR_DividesByNominal(t *testing.T) {
	t.Parallel()
	s := newCBR(respond(cbrXMLNominal, 200), "JPY")

	q, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 0.645, q.RawRate, 1e-9)
	require.Equal(t, 0.65, q.Rate)
}

func Test_CBR_SampledChangeWithoutPrevious(t *testing.T) {
	t.Parallel()
	// fracRand at the midpoint makes Uniform(-0.3, 0.3) return zero.
	s := newCBR(respond(cbrXMLNoPrevious, 200), "USD")

	q, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.True(t, q.IsRealData, "sampled delta must not downgrade the rate's provenance")
	require.Zero(t, q.Change)
	require.Zero(t, q.ChangePercent)
}

func Test_CBR_TargetCurrencyMissing(t *testing.T) {
	t.Parallel()
	s := newCBR(respond(cbrXML, 200), "GBP")

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, application.ErrFieldNotFound)
	require.Equal(t, application.OutcomeMissingField, application.ClassifyOutcome(err))
}

func Test_CBR_MalformedXML(t *testing.T) {
	t.Parallel()
	s := newCBR(respond("<ValCurs><Valute>", 200), "USD")

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	require.Equal(t, application.OutcomeParse, application.ClassifyOutcome(err))
}

func Test_CBR_BadDecimal(t *testing.T) {
	t.Parallel()
	body := `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="02.06.2025"><Valute><CharCode>USD</CharCode><Nominal>1</Nominal><Value>n/a</Value></Valute></ValCurs>`
	s := newCBR(respond(body, 200), "USD")

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, application.ErrParse)
}

func Test_CBR_HTTPErrorStatus(t *testing.T) {
	t.Parallel()
	s := newCBR(respond("gateway timeout", 504), "USD")

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	require.Equal(t, application.OutcomeTransport, application.ClassifyOutcome(err))
}

func Test_CBR_Timeout(t *testing.T) {
	t.Parallel()
	s := newCBR(timingOut(), "USD")

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	require.Equal(t, application.OutcomeTransport, application.ClassifyOutcome(err))
}
