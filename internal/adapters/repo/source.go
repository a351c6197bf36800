package repo

import (
	"context"
	"io"
	"os"
	"strings"

	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/zerr"
)

// ParseMetadata reads primary metadata in any supported compression and format.
func ParseMetadata(ctx context.Context, r io.Reader, repoID string) ([]*domain.Package, error) {
	dr, err := decompress(r)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPrimaryParseFailed.Error()), "repo", repoID)
	}
	defer func() { _ = dr.Close() }()

	format, br := sniff(dr)
	if format == FormatXML {
		return ParsePrimaryXML(br, repoID)
	}

	// sqlite needs a file on disk.
	tmp, err := os.CreateTemp("", "sackd-primary-*.sqlite")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrPrimaryParseFailed.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, br); err != nil {
		_ = tmp.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPrimaryParseFailed.Error()), "repo", repoID)
	}
	if err := tmp.Close(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPrimaryParseFailed.Error())
	}
	return ParsePrimarySQLite(ctx, tmp.Name(), repoID)
}

// Source loads the packages of one repository.
type Source struct {
	repo    domain.RepoConfig
	fetcher ports.Fetcher
	store   ports.MetadataStore
}

// NewSource creates a Source for repo.
func NewSource(repo domain.RepoConfig, fetcher ports.Fetcher, store ports.MetadataStore) *Source {
	return &Source{repo: repo, fetcher: fetcher, store: store}
}

// Load reads the repository's primary metadata. With a base URL, repomd.xml is consulted
// and the primary file is served from the metadata store when its checksum is cached.
func (s *Source) Load(ctx context.Context) ([]*domain.Package, error) {
	if s.repo.Metadata != "" {
		return s.loadURL(ctx, s.repo.Metadata)
	}

	file, err := s.readRepoMD(ctx)
	if err != nil {
		return nil, err
	}

	path, ok := s.store.Lookup(s.repo.ID, file.Key())
	if !ok {
		path, err = s.download(ctx, file)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	return ParseMetadata(ctx, f, s.repo.ID)
}

func (s *Source) loadURL(ctx context.Context, rawURL string) ([]*domain.Package, error) {
	body, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	return ParseMetadata(ctx, body, s.repo.ID)
}

func (s *Source) readRepoMD(ctx context.Context) (DataFile, error) {
	body, err := s.fetcher.Fetch(ctx, joinURL(s.repo.BaseURL, repomdPath))
	if err != nil {
		return DataFile{}, err
	}
	defer func() { _ = body.Close() }()

	file, err := ParseRepoMD(body)
	if err != nil {
		return DataFile{}, zerr.With(err, "repo", s.repo.ID)
	}
	return file, nil
}

func (s *Source) download(ctx context.Context, file DataFile) (string, error) {
	body, err := s.fetcher.Fetch(ctx, joinURL(s.repo.BaseURL, file.Href))
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	verified, err := newVerifyingReader(body, file)
	if err != nil {
		return "", err
	}
	return s.store.Put(s.repo.ID, file.Key(), verified)
}

func joinURL(base, rel string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rel, "/")
}
