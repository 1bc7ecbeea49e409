package bootstrap

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"cbrates-service/internal/application"
	"cbrates-service/internal/config"
	"cbrates-service/internal/domain"
	"cbrates-service/internal/infrastructure/httpx"
	"cbrates-service/internal/infrastructure/logx"
	"cbrates-service/internal/infrastructure/metrics"
	"cbrates-service/internal/infrastructure/source"
)

// App bundles everything cmd/api needs to serve.
type App struct {
	Service  *application.RatesService
	Registry *prometheus.Registry
}

// Build assembles the acquisition chain from config: direct CBR feed, then
// one relay strategy per configured proxy, then the alternate JSON APIs,
// with the synthetic source closing the chain.
func Build(cfg config.Config) (*App, error) {
	log := logx.L()
	if !domain.ValidCurrencyCode(cfg.Currency) {
		return nil, fmt.Errorf("invalid currency code %q", cfg.Currency)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewResolverMetrics(reg)

	rnd := application.NewLockedRand(time.Now().UnixNano())
	clock := application.SystemClock{}

	directClient, err := httpx.New(cfg.CBRTimeout, "")
	if err != nil {
		return nil, err
	}
	sources := []application.RateSource{
		source.NewCBR("cbr", cfg.CBRURL, cfg.Currency, directClient, rnd, clock, cfg.ChangeJitter),
	}

	for i, proxyURL := range cfg.ProxyURLs {
		relay, err := source.NewCBRViaProxy(i, proxyURL, cfg.CBRURL, cfg.Currency, cfg.ProxyTimeout, rnd, clock, cfg.ChangeJitter)
		if err != nil {
			// A bad relay URL costs one strategy, not the service.
			log.Warn("skipping proxy relay", zap.String("proxy", proxyURL), zap.Error(err))
			continue
		}
		sources = append(sources, relay)
	}

	altClient, err := httpx.New(cfg.AltTimeout, "")
	if err != nil {
		return nil, err
	}
	sources = append(sources,
		source.NewJSONAPI("cbr-json", cfg.CBRJSONURL, "Valute."+cfg.Currency+".Value", cfg.Currency, altClient, rnd, clock, cfg.ChangeJitter),
		source.NewJSONAPI("er-api", cfg.ERAPIURL, "rates.RUB", cfg.Currency, altClient, rnd, clock, cfg.ChangeJitter),
	)

	fallback := source.NewSynthetic(cfg.FallbackRate, cfg.FallbackJitter, cfg.ChangeJitter, cfg.Currency, rnd, clock)

	resolver := application.NewResolver(sources, fallback,
		application.WithResolverLogger(log),
		application.WithObserver(m),
		application.WithLastResort(domain.RateQuote{
			Currency: cfg.Currency,
			Rate:     domain.Round2(cfg.FallbackRate),
			RawRate:  cfg.FallbackRate,
		}),
	)
	synth := application.NewSynthesizer(application.SynthParams{
		Band:        cfg.Band,
		WeekdayVol:  cfg.WeekdayVol,
		WeekendVol:  cfg.WeekendVol,
		DriftFactor: cfg.DriftFactor,
	},
		application.WithSynthClock(clock),
		application.WithSynthRand(rnd),
	)

	return &App{
		Service:  application.NewRatesService(resolver, synth, cfg.HistoryDays),
		Registry: reg,
	}, nil
}
