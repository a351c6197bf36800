// Package rpmdb reads installed packages from the host rpm database.
package rpmdb

import (
	"context"
	"os"
	"path/filepath"

	rpmdb "github.com/knqyf263/go-rpmdb/pkg"
	slogcontext "github.com/veqryn/slog-context"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/zerr"
)

// dbFiles are the database files rpm uses, newest backend first: sqlite, ndb, bdb.
var dbFiles = []string{"rpmdb.sqlite", "Packages.db", "Packages"}

// Reader lists installed packages from an rpm database.
type Reader struct {
	path string
}

// NewReader creates a Reader for path, which is either a database file or the directory
// containing one.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Locate returns the database file for the configured path.
func (r *Reader) Locate() (string, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRPMDBNotFound.Error()), "path", r.path)
	}
	if !info.IsDir() {
		return r.path, nil
	}
	for _, name := range dbFiles {
		candidate := filepath.Join(r.path, name)
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", zerr.With(domain.ErrRPMDBNotFound, "path", r.path)
}

// Installed returns every installed package. A host without an rpm database has no
// installed packages.
func (r *Reader) Installed(ctx context.Context) ([]*domain.Package, error) {
	path, err := r.Locate()
	if err != nil {
		slogcontext.FromCtx(ctx).Warn("no rpm database, installed set is empty", "path", r.path)
		return nil, nil
	}

	db, err := rpmdb.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRPMDBReadFailed.Error()), "path", path)
	}
	defer func() { _ = db.Close() }()

	infos, err := db.ListPackages()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRPMDBReadFailed.Error()), "path", path)
	}

	pkgs := make([]*domain.Package, 0, len(infos))
	for _, info := range infos {
		if info.Name == "gpg-pubkey" {
			continue
		}
		pkgs = append(pkgs, toDomain(info))
	}
	return pkgs, nil
}

func toDomain(info *rpmdb.PackageInfo) *domain.Package {
	pkg := &domain.Package{
		Name:    info.Name,
		Version: info.Version,
		Release: info.Release,
		Arch:    info.Arch,
		Repo:    domain.SystemRepo,
	}
	if info.Epoch != nil {
		pkg.Epoch = *info.Epoch
	}
	if pkg.Arch == "" {
		pkg.Arch = domain.NoArch
	}

	for _, name := range info.Provides {
		if c, ok := domain.ParseCapability(name); ok {
			pkg.Provides = append(pkg.Provides, c)
		}
	}
	if files, err := info.InstalledFileNames(); err == nil {
		pkg.Files = files
	}
	return pkg
}
