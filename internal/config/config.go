package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	Port     string
	// Target currency (quoted against RUB)
	Currency string
	// Primary source
	CBRURL     string
	CBRTimeout time.Duration
	// Proxy relays for the primary source, tried in order
	ProxyURLs    []string
	ProxyTimeout time.Duration
	// Alternate third-party APIs
	CBRJSONURL string
	ERAPIURL   string
	AltTimeout time.Duration
	// Synthetic fallback
	FallbackRate   float64
	FallbackJitter float64
	ChangeJitter   float64
	// History synthesis
	HistoryDays int
	Band        float64
	WeekdayVol  float64
	WeekendVol  float64
	DriftFactor float64
	// Server
	ShutdownTimeout time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func floatDef(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func durMS(key string, defMS int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, strconv.Itoa(defMS)), defMS)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:             getEnv("ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnv("PORT", "8080"),
		Currency:        getEnv("CURRENCY_CODE", "USD"),
		CBRURL:          getEnv("CBR_URL", "https://www.cbr.ru/scripts/XML_daily.asp"),
		CBRTimeout:      durMS("CBR_TIMEOUT_MS", 10000),
		ProxyURLs:       splitCSV(getEnv("PROXY_URLS", "")),
		ProxyTimeout:    durMS("PROXY_TIMEOUT_MS", 12000),
		CBRJSONURL:      getEnv("CBR_JSON_URL", "https://www.cbr-xml-daily.ru/daily_json.js"),
		ERAPIURL:        getEnv("ERAPI_URL", "https://open.er-api.com/v6/latest/USD"),
		AltTimeout:      durMS("ALT_TIMEOUT_MS", 8000),
		FallbackRate:    floatDef(getEnv("FALLBACK_RATE", ""), 92.50),
		FallbackJitter:  floatDef(getEnv("FALLBACK_JITTER", ""), 0.2),
		ChangeJitter:    floatDef(getEnv("CHANGE_JITTER", ""), 0.3),
		HistoryDays:     atoiDef(getEnv("HISTORY_DAYS", "30"), 30),
		Band:            floatDef(getEnv("HISTORY_BAND", ""), 3.0),
		WeekdayVol:      floatDef(getEnv("WEEKDAY_VOLATILITY", ""), 0.8),
		WeekendVol:      floatDef(getEnv("WEEKEND_VOLATILITY", ""), 0.2),
		DriftFactor:     floatDef(getEnv("DRIFT_FACTOR", ""), 0.001),
		ShutdownTimeout: durMS("SHUTDOWN_TIMEOUT_MS", 10000),
	}
}
