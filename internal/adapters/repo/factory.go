package repo

import (
	"go.trai.ch/sackd/internal/adapters/cas"
	"go.trai.ch/sackd/internal/adapters/fetch"
	"go.trai.ch/sackd/internal/adapters/rpmdb"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
)

var _ ports.LoaderFactory = (*Factory)(nil)

// Factory implements ports.LoaderFactory.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewLoader builds a Loader with a breaker-guarded fetcher and an on-disk metadata store.
// cfg.Arch must already be resolved.
func (f *Factory) NewLoader(cfg *domain.Config) (ports.RepositoryLoader, error) {
	fetcher := fetch.NewCircuitBreakerFetcher(fetch.NewFetcher(
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithMaxRetries(cfg.Fetch.MaxRetries),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
	))

	var installed InstalledSource = rpmdb.NewReader(cfg.Installed.RPMDB)
	if cfg.Installed.Snapshot != "" {
		installed = NewSnapshotSource(cfg.Installed.Snapshot, fetcher)
	}

	return NewLoader(LoaderOptions{
		Installed: installed,
		Repos:     cfg.Repos,
		ReposDirs: cfg.ReposDirs,
		Vars:      Vars{Arch: cfg.Arch, ReleaseVer: cfg.ReleaseVer},
		Fetcher:   fetcher,
		Store:     cas.NewStore(cfg.CacheDir),
	}), nil
}
