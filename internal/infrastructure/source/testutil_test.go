package source_test

import (
	"io"
	"net/http"
	"strings"
	"time"

	"cbrates-service/internal/infrastructure/httpx"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(body string, code int) roundTripFunc {
	return func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: code,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	}
}

func client(rt http.RoundTripper) *httpx.Client {
	return &httpx.Client{HTTP: &http.Client{Transport: rt, Timeout: 2 * time.Second}}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func timingOut() roundTripFunc {
	return func(*http.Request) (*http.Response, error) { return nil, timeoutErr{} }
}

type fracRand struct{ frac float64 }

func (r fracRand) Uniform(low, high float64) float64 { return low + r.frac*(high-low) }

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
