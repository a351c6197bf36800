// Package cas implements a content-addressed cache for downloaded repository metadata.
package cas

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataStore = (*Store)(nil)

// entrySuffix marks committed cache entries; anything else in a repo directory is debris.
const entrySuffix = ".md"

// Store implements ports.MetadataStore with one directory per repository and one file per
// checksum.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir. The directory is created lazily.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Lookup implements ports.MetadataStore.
func (s *Store) Lookup(repoID, checksum string) (string, bool) {
	path := s.filename(repoID, checksum)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Put implements ports.MetadataStore. The entry only becomes visible once r has been
// read to EOF without error, so a reader that fails late (a checksum mismatch) leaves the
// previous entries untouched.
func (s *Store) Put(repoID, checksum string, r io.Reader) (string, error) {
	dir := domain.RepoCachePath(s.root, repoID)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".incoming-*")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "repo", repoID)
	}
	if err := tmp.Close(); err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	path := s.filename(repoID, checksum)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := s.prune(dir, path); err != nil {
		return "", err
	}
	return path, nil
}

// prune removes every entry of a repository except keep.
func (s *Store) prune(dir, keep string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if path == keep || e.IsDir() || filepath.Ext(path) != entrySuffix {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
		}
	}
	return nil
}

func (s *Store) filename(repoID, checksum string) string {
	sum := xxhash.Sum64String(repoID + "\x00" + checksum)
	return filepath.Join(domain.RepoCachePath(s.root, repoID), strconv.FormatUint(sum, 16)+entrySuffix)
}
