package fetch

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*CircuitBreakerFetcher)(nil)

// tripThreshold is the number of consecutive failures that opens a host's breaker.
const tripThreshold = 5

// CircuitBreakerFetcher wraps a Fetcher with per-host circuit breakers so a dead mirror
// fails fast on every rebuild instead of waiting out its retries.
type CircuitBreakerFetcher struct {
	fetcher  *Fetcher
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

// NewCircuitBreakerFetcher creates a new circuit breaker wrapper for a fetcher.
func NewCircuitBreakerFetcher(f *Fetcher) *CircuitBreakerFetcher {
	return &CircuitBreakerFetcher{
		fetcher:  f,
		breakers: make(map[string]*circuit.Breaker),
	}
}

func (cbf *CircuitBreakerFetcher) getBreaker(host string) *circuit.Breaker {
	cbf.mu.RLock()
	breaker, exists := cbf.breakers[host]
	cbf.mu.RUnlock()

	if exists {
		return breaker
	}

	cbf.mu.Lock()
	defer cbf.mu.Unlock()

	if breaker, exists := cbf.breakers[host]; exists {
		return breaker
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(tripThreshold),
	})
	cbf.breakers[host] = breaker
	return breaker
}

// Fetch implements ports.Fetcher. Local paths bypass the breakers.
func (cbf *CircuitBreakerFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	host := extractHost(rawURL)
	if host == "" {
		return cbf.fetcher.Fetch(ctx, rawURL)
	}

	breaker := cbf.getBreaker(host)
	if !breaker.Ready() {
		return nil, zerr.With(
			zerr.Wrap(errors.Join(ErrUpstreamDown, circuit.ErrBreakerOpen), domain.ErrFetchFailed.Error()),
			"host", host,
		)
	}

	var body io.ReadCloser
	err := breaker.Call(func() error {
		var fetchErr error
		body, fetchErr = cbf.fetcher.Fetch(ctx, rawURL)
		return fetchErr
	}, 0)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// BreakerStates reports "open" or "closed" per host.
func (cbf *CircuitBreakerFetcher) BreakerStates() map[string]string {
	cbf.mu.RLock()
	defer cbf.mu.RUnlock()

	states := make(map[string]string, len(cbf.breakers))
	for host, breaker := range cbf.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

// extractHost returns the host of a remote URL, or "" for local paths.
func extractHost(rawURL string) string {
	if _, local := localPath(rawURL); local {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
