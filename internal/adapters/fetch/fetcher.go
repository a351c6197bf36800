// Package fetch downloads repository metadata with retries, per-host circuit breaking and
// cached DNS resolution. file:// URLs and bare paths are opened from disk.
package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/cenk/backoff"
	"github.com/rs/dnscache"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/zerr"
)

// Failure classes. Only ErrUpstreamDown is retried.
var (
	ErrNotFound     = errors.New("metadata not found")
	ErrUpstreamDown = errors.New("upstream unavailable")
)

const dnsRefreshInterval = 5 * time.Minute

// Fetcher downloads metadata from http(s) and file URLs.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	baseDelay  time.Duration

	dns          *dnscache.Resolver
	dnsMu        sync.Mutex
	dnsRefreshed time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client. The cached DNS dialer is not used.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxRetries sets the maximum retry attempts.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		f.maxRetries = n
	}
}

// WithBaseDelay sets the initial delay for exponential backoff.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.baseDelay = d
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// NewFetcher creates a new Fetcher with the given options.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		dns:        &dnscache.Resolver{},
		userAgent:  domain.DefaultUserAgent,
		maxRetries: domain.DefaultFetchRetries,
		baseDelay:  500 * time.Millisecond,
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	f.client = &http.Client{
		Timeout: domain.DefaultFetchTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				f.refreshDNS()
				ips, err := f.dns.LookupHost(ctx, host)
				if err != nil {
					return nil, err
				}
				var lastErr error
				for _, ip := range ips {
					conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
					if err == nil {
						return conn, nil
					}
					lastErr = err
				}
				return nil, zerr.With(zerr.Wrap(lastErr, "failed to dial any resolved address"), "host", host)
			},
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// refreshDNS drops stale cache entries. It runs on the dialing goroutine, so the daemon
// stays free of background work.
func (f *Fetcher) refreshDNS() {
	f.dnsMu.Lock()
	defer f.dnsMu.Unlock()
	if time.Since(f.dnsRefreshed) < dnsRefreshInterval {
		return
	}
	if !f.dnsRefreshed.IsZero() {
		f.dns.Refresh(true)
	}
	f.dnsRefreshed = time.Now()
}

// Fetch implements ports.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if path, ok := localPath(rawURL); ok {
		//nolint:gosec // Repository paths come from the operator's configuration.
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, zerr.With(zerr.Wrap(ErrNotFound, domain.ErrFetchFailed.Error()), "url", rawURL)
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", rawURL)
		}
		return file, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.baseDelay
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(f.maxRetries, 0))), ctx)

	var body io.ReadCloser
	err := backoff.Retry(func() error {
		var err error
		body, err = f.doFetch(ctx, rawURL)
		if err != nil && !errors.Is(err, ErrUpstreamDown) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", rawURL)
	}
	return body, nil
}

func (f *Fetcher) doFetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Join(ErrUpstreamDown, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_ = resp.Body.Close()
		return nil, errors.Join(ErrUpstreamDown, zerr.With(zerr.New("retryable status"), "status", resp.StatusCode))
	default:
		_ = resp.Body.Close()
		return nil, zerr.With(zerr.New("unexpected status"), "status", resp.StatusCode)
	}
}

// localPath returns the filesystem path of a file URL or a bare path.
func localPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	switch u.Scheme {
	case "file":
		return u.Path, true
	case "":
		return rawURL, true
	default:
		return "", false
	}
}
