package source

import (
	"fmt"
	"time"

	"cbrates-service/internal/application"
	"cbrates-service/internal/infrastructure/httpx"
)

// NewCBRViaProxy returns the CBR strategy relayed through one intermediary
// proxy. Each relay is its own entry in the chain with its own timeout, so a
// dead relay is skipped without aborting the rest of the list.
func NewCBRViaProxy(index int, proxyURL, rawURL, currency string, timeout time.Duration, rnd application.Rand, clock application.Clock, changeJitter float64) (*CBR, error) {
	client, err := httpx.New(timeout, proxyURL)
	if err != nil {
		return nil, fmt.Errorf("cbr-proxy-%d: %w", index+1, err)
	}
	name := fmt.Sprintf("cbr-proxy-%d", index+1)
	return NewCBR(name, rawURL, currency, client, rnd, clock, changeJitter), nil
}
