// Package repo loads package metadata from rpm repositories and the installed database.
package repo

import (
	"context"
	"time"

	slogcontext "github.com/veqryn/slog-context"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxParallelRepos bounds concurrent repository downloads during a rebuild.
const maxParallelRepos = 4

var _ ports.RepositoryLoader = (*Loader)(nil)

// breakerReporter is implemented by fetchers that track per-host circuit breakers.
type breakerReporter interface {
	BreakerStates() map[string]string
}

// InstalledSource lists installed packages.
type InstalledSource interface {
	Installed(ctx context.Context) ([]*domain.Package, error)
}

// Loader implements ports.RepositoryLoader over the installed database, the configured
// repositories and the .repo files found in the repos directories.
type Loader struct {
	installed InstalledSource
	repos     []domain.RepoConfig
	reposDirs []string
	vars      Vars
	fetcher   ports.Fetcher
	store     ports.MetadataStore
}

// LoaderOptions holds the collaborators of a Loader.
type LoaderOptions struct {
	Installed InstalledSource
	Repos     []domain.RepoConfig
	ReposDirs []string
	Vars      Vars
	Fetcher   ports.Fetcher
	Store     ports.MetadataStore
}

// NewLoader creates a Loader.
func NewLoader(opts LoaderOptions) *Loader {
	return &Loader{
		installed: opts.Installed,
		repos:     opts.Repos,
		reposDirs: opts.ReposDirs,
		vars:      opts.Vars,
		fetcher:   opts.Fetcher,
		store:     opts.Store,
	}
}

// LoadAll implements ports.RepositoryLoader. The repos directories are rescanned on every
// call so a rebuild after flushcache sees added or removed .repo files. Repositories are
// fetched concurrently and merged in definition order.
func (l *Loader) LoadAll(ctx context.Context) ([]*domain.Package, error) {
	log := slogcontext.FromCtx(ctx)

	installed, err := l.installed.Installed(ctx)
	if err != nil {
		return nil, err
	}
	pkgs := make([]*domain.Package, 0, len(installed))
	for _, pkg := range installed {
		pkg.Repo = domain.SystemRepo
		pkgs = append(pkgs, pkg)
	}
	log.Debug("installed packages loaded", "packages", len(installed))

	repos, err := l.enabledRepos(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]*domain.Package, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRepos)
	for i, repo := range repos {
		g.Go(func() error {
			start := time.Now()
			found, err := NewSource(repo, l.fetcher, l.store).Load(gctx)
			if err != nil {
				// A cancelled build is never a skippable repository.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if repo.SkipIfUnavailable {
					log.Warn("skipping unavailable repository", "repo", repo.ID, "error", err)
					return nil
				}
				return zerr.With(zerr.Wrap(err, domain.ErrRepoUnavailable.Error()), "repo", repo.ID)
			}
			log.Debug("repository loaded", "repo", repo.ID, "packages", len(found), "duration", time.Since(start))
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if r, ok := l.fetcher.(breakerReporter); ok {
			log.Debug("circuit breakers after failed load", "breakers", r.BreakerStates())
		}
		return nil, err
	}

	// Merge in repository order so candidate order does not depend on download timing.
	for _, found := range results {
		pkgs = append(pkgs, found...)
	}
	return pkgs, nil
}

// enabledRepos merges configured and discovered repositories. The first definition of an
// id wins.
func (l *Loader) enabledRepos(ctx context.Context) ([]domain.RepoConfig, error) {
	discovered, err := ReadRepoDirs(l.reposDirs, l.vars)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var repos []domain.RepoConfig
	for _, repo := range append(append([]domain.RepoConfig(nil), l.repos...), discovered...) {
		if _, dup := seen[repo.ID]; dup {
			slogcontext.FromCtx(ctx).Debug("duplicate repository id ignored", "repo", repo.ID)
			continue
		}
		seen[repo.ID] = struct{}{}
		if repo.Enabled {
			repos = append(repos, repo)
		}
	}
	return repos, nil
}

// SnapshotSource reads installed packages from a primary-format metadata file.
type SnapshotSource struct {
	path    string
	fetcher ports.Fetcher
}

// NewSnapshotSource creates a SnapshotSource for path.
func NewSnapshotSource(path string, fetcher ports.Fetcher) *SnapshotSource {
	return &SnapshotSource{path: path, fetcher: fetcher}
}

// Installed implements InstalledSource.
func (s *SnapshotSource) Installed(ctx context.Context) ([]*domain.Package, error) {
	body, err := s.fetcher.Fetch(ctx, s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	return ParseMetadata(ctx, body, domain.SystemRepo)
}
