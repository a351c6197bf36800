package repo_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	slogcontext "github.com/veqryn/slog-context"
	"go.trai.ch/sackd/internal/adapters/cas"
	"go.trai.ch/sackd/internal/adapters/fetch"
	"go.trai.ch/sackd/internal/adapters/repo"
	"go.trai.ch/sackd/internal/core/domain"
)

const primaryHref = "repodata/abc-primary.xml.gz"

type staticInstalled []*domain.Package

func (s staticInstalled) Installed(context.Context) ([]*domain.Package, error) {
	return s, nil
}

func repomd(checksum string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<repomd xmlns="http://linux.duke.edu/metadata/repo" xmlns:rpm="http://linux.duke.edu/metadata/rpm">
  <revision>1712345678</revision>
  <data type="filelists">
    <checksum type="sha256">ffff</checksum>
    <location href="repodata/abc-filelists.xml.gz"/>
  </data>
  <data type="primary">
    <checksum type="sha256">%s</checksum>
    <open-checksum type="sha256">eeee</open-checksum>
    <location href="%s"/>
  </data>
</repomd>
`, checksum, primaryHref)
}

// repoServer serves a repository whose primary file is gzipped fixture XML. primaryHits
// counts primary downloads.
func repoServer(t *testing.T, checksum string, primaryHits *atomic.Int32) *httptest.Server {
	t.Helper()
	primary := gzipped(t, primaryXML)
	if checksum == "" {
		sum := sha256.Sum256(primary)
		checksum = hex.EncodeToString(sum[:])
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repo/repodata/repomd.xml":
			_, _ = w.Write([]byte(repomd(checksum)))
		case "/repo/" + primaryHref:
			primaryHits.Add(1)
			_, _ = w.Write(primary)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newLoader(t *testing.T, repos []domain.RepoConfig, cacheDir string) *repo.Loader {
	t.Helper()
	return repo.NewLoader(repo.LoaderOptions{
		Installed: staticInstalled{{Name: "bash", Version: "5.2.15", Release: "1.fc40", Arch: "x86_64"}},
		Repos:     repos,
		Fetcher:   fetch.NewFetcher(fetch.WithMaxRetries(0)),
		Store:     cas.NewStore(cacheDir),
	})
}

func TestLoader_RemoteRepository(t *testing.T) {
	var hits atomic.Int32
	srv := repoServer(t, "", &hits)
	loader := newLoader(t, []domain.RepoConfig{
		{ID: "fedora", BaseURL: srv.URL + "/repo/", Enabled: true},
	}, t.TempDir())

	pkgs, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 4)
	assert.Equal(t, domain.SystemRepo, pkgs[0].Repo)
	assertFixture(t, pkgs[1:], "fedora")

	// The unchanged primary file is served from the cache.
	_, err = loader.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoader_ChecksumMismatch(t *testing.T) {
	var hits atomic.Int32
	srv := repoServer(t, "0000000000000000000000000000000000000000000000000000000000000000", &hits)
	cacheDir := t.TempDir()
	loader := newLoader(t, []domain.RepoConfig{
		{ID: "fedora", BaseURL: srv.URL + "/repo", Enabled: true},
	}, cacheDir)

	_, err := loader.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRepoUnavailable.Error())
	assert.ErrorContains(t, err, domain.ErrChecksumMismatch.Error())

	entries, err := filepath.Glob(filepath.Join(cacheDir, "fedora", "*.md"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoader_SkipIfUnavailable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere")
	loader := newLoader(t, []domain.RepoConfig{
		{ID: "gone", BaseURL: "file://" + missing, Enabled: true, SkipIfUnavailable: true},
		{ID: "off", BaseURL: "file://" + missing, Enabled: false},
	}, t.TempDir())

	pkgs, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, pkgs, 1)
}

func TestLoader_CancelledSkippableRepoFails(t *testing.T) {
	var hits atomic.Int32
	srv := repoServer(t, "", &hits)
	loader := newLoader(t, []domain.RepoConfig{
		{ID: "fedora", BaseURL: srv.URL + "/repo", Enabled: true, SkipIfUnavailable: true},
	}, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pkgs, err := loader.LoadAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, pkgs)
	assert.Zero(t, hits.Load())
}

func TestLoader_UnavailableIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere")
	loader := newLoader(t, []domain.RepoConfig{
		{ID: "gone", BaseURL: "file://" + missing, Enabled: true},
	}, t.TempDir())

	_, err := loader.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRepoUnavailable.Error())
}

func TestLoader_LogsBreakerStatesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	loader := repo.NewLoader(repo.LoaderOptions{
		Installed: staticInstalled{},
		Repos:     []domain.RepoConfig{{ID: "gone", BaseURL: srv.URL + "/repo", Enabled: true}},
		Fetcher:   fetch.NewCircuitBreakerFetcher(fetch.NewFetcher(fetch.WithMaxRetries(0))),
		Store:     cas.NewStore(t.TempDir()),
	})

	var buf bytes.Buffer
	ctx := slogcontext.NewCtx(context.Background(),
		slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := loader.LoadAll(ctx)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "circuit breakers after failed load")
	assert.Contains(t, buf.String(), "breakers=map["+srv.Listener.Addr().String()+":closed]")
}

func TestLoader_DirectMetadataAndRepoDirs(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.xml.gz")
	require.NoError(t, os.WriteFile(primary, gzipped(t, primaryXML), domain.FilePerm))

	reposDir := filepath.Join(dir, "yum.repos.d")
	require.NoError(t, os.MkdirAll(reposDir, domain.DirPerm))
	repoFile := fmt.Sprintf("[local]\nname=Local $releasever\nbaseurl=file://%s\n", dir)
	require.NoError(t, os.WriteFile(filepath.Join(reposDir, "local.repo"), []byte(repoFile), domain.FilePerm))

	// repodata for the discovered repository.
	repodata := filepath.Join(dir, "repodata")
	require.NoError(t, os.MkdirAll(repodata, domain.DirPerm))
	data := gzipped(t, primaryXML)
	sum := sha256.Sum256(data)
	require.NoError(t, os.WriteFile(filepath.Join(dir, primaryHref), data, domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(repodata, "repomd.xml"), []byte(repomd(hex.EncodeToString(sum[:]))), domain.FilePerm))

	loader := repo.NewLoader(repo.LoaderOptions{
		Installed: staticInstalled{},
		Repos:     []domain.RepoConfig{{ID: "direct", Metadata: primary, Enabled: true}},
		ReposDirs: []string{reposDir, filepath.Join(dir, "missing")},
		Vars:      repo.Vars{Arch: "x86_64", ReleaseVer: "40"},
		Fetcher:   fetch.NewFetcher(fetch.WithMaxRetries(0)),
		Store:     cas.NewStore(filepath.Join(dir, "cache")),
	})

	pkgs, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 6)
	assertFixture(t, pkgs[:3], "direct")
	assertFixture(t, pkgs[3:], "local")
}

func TestLoader_MergesInDefinitionOrder(t *testing.T) {
	var hits atomic.Int32
	srv := repoServer(t, "", &hits)
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		srv.Config.Handler.ServeHTTP(w, r)
	}))
	t.Cleanup(slow.Close)

	primary := filepath.Join(t.TempDir(), "primary.xml")
	require.NoError(t, os.WriteFile(primary, []byte(primaryXML), domain.FilePerm))

	loader := newLoader(t, []domain.RepoConfig{
		{ID: "slow", BaseURL: slow.URL + "/repo", Enabled: true},
		{ID: "fast", Metadata: primary, Enabled: true},
	}, t.TempDir())

	pkgs, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 7)
	assertFixture(t, pkgs[1:4], "slow")
	assertFixture(t, pkgs[4:], "fast")
}

func TestSnapshotSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.xml")
	require.NoError(t, os.WriteFile(path, []byte(primaryXML), domain.FilePerm))

	pkgs, err := repo.NewSnapshotSource(path, fetch.NewFetcher()).Installed(context.Background())
	require.NoError(t, err)
	assertFixture(t, pkgs, domain.SystemRepo)
}
