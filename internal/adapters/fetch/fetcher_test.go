package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sackd/internal/adapters/fetch"
	"go.trai.ch/sackd/internal/core/domain"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func newFetcher(retries int) *fetch.Fetcher {
	return fetch.NewFetcher(
		fetch.WithMaxRetries(retries),
		fetch.WithBaseDelay(time.Millisecond),
		fetch.WithUserAgent("sackd-test"),
		fetch.WithTimeout(5*time.Second),
	)
}

func TestFetcher_HTTP(t *testing.T) {
	var agent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent.Store(r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, "<repomd/>")
	}))
	defer srv.Close()

	body, err := newFetcher(0).Fetch(context.Background(), srv.URL+"/repodata/repomd.xml")
	require.NoError(t, err)
	assert.Equal(t, "<repomd/>", readAll(t, body))
	assert.Equal(t, "sackd-test", agent.Load())
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	body, err := newFetcher(3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", readAll(t, body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcher_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newFetcher(1).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcher_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newFetcher(3).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, fetch.ErrNotFound.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetcher_LocalFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primary.xml")
	require.NoError(t, os.WriteFile(path, []byte("<metadata/>"), domain.FilePerm))

	f := newFetcher(0)

	body, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<metadata/>", readAll(t, body))

	body, err = f.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "<metadata/>", readAll(t, body))

	_, err = f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
}

func TestCircuitBreakerFetcher_Trips(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cbf := fetch.NewCircuitBreakerFetcher(newFetcher(0))
	for range 5 {
		_, err := cbf.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
	}
	require.Equal(t, int32(5), calls.Load())

	_, err := cbf.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(5), calls.Load())

	states := cbf.BreakerStates()
	require.Len(t, states, 1)
	for _, state := range states {
		assert.Equal(t, "open", state)
	}
}

func TestCircuitBreakerFetcher_LocalBypassesBreaker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primary.xml")
	require.NoError(t, os.WriteFile(path, []byte("x"), domain.FilePerm))

	cbf := fetch.NewCircuitBreakerFetcher(newFetcher(0))
	body, err := cbf.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "x", readAll(t, body))
	assert.Empty(t, cbf.BreakerStates())
}
