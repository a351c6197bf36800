package repo

import (
	"context"
	"database/sql"
	"net/url"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver.
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	queryPackages = `SELECT pkgKey, name, arch, COALESCE(epoch, ''), version, release FROM packages ORDER BY pkgKey`
	queryProvides = `SELECT pkgKey, name, COALESCE(flags, ''), COALESCE(epoch, ''), COALESCE(version, ''), COALESCE(release, '') FROM provides`
	queryFiles    = `SELECT pkgKey, name FROM files`
)

// ParsePrimarySQLite reads the packages of a primary.sqlite database file.
func ParsePrimarySQLite(ctx context.Context, path, repoID string) ([]*domain.Package, error) {
	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro&immutable=1"}).String()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, sqliteError(err, repoID)
	}
	defer func() { _ = db.Close() }()

	pkgs, byKey, err := readPackages(ctx, db, repoID)
	if err != nil {
		return nil, sqliteError(err, repoID)
	}
	if err := readProvides(ctx, db, byKey); err != nil {
		return nil, sqliteError(err, repoID)
	}
	if err := readFiles(ctx, db, byKey); err != nil {
		return nil, sqliteError(err, repoID)
	}
	return pkgs, nil
}

func sqliteError(err error, repoID string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrPrimaryParseFailed.Error()), "repo", repoID)
}

func readPackages(ctx context.Context, db *sql.DB, repoID string) ([]*domain.Package, map[int64]*domain.Package, error) {
	rows, err := db.QueryContext(ctx, queryPackages)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	var pkgs []*domain.Package
	byKey := make(map[int64]*domain.Package)
	for rows.Next() {
		var (
			key   int64
			epoch string
			pkg   = &domain.Package{Repo: repoID}
		)
		if err := rows.Scan(&key, &pkg.Name, &pkg.Arch, &epoch, &pkg.Version, &pkg.Release); err != nil {
			return nil, nil, err
		}
		pkg.Epoch = parseEpoch(epoch)
		pkgs = append(pkgs, pkg)
		byKey[key] = pkg
	}
	return pkgs, byKey, rows.Err()
}

func readProvides(ctx context.Context, db *sql.DB, byKey map[int64]*domain.Package) error {
	rows, err := db.QueryContext(ctx, queryProvides)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			key                          int64
			name, flags, epoch, ver, rel string
		)
		if err := rows.Scan(&key, &name, &flags, &epoch, &ver, &rel); err != nil {
			return err
		}
		if pkg, ok := byKey[key]; ok {
			pkg.Provides = append(pkg.Provides, newCapability(name, flags, epoch, ver, rel))
		}
	}
	return rows.Err()
}

func readFiles(ctx context.Context, db *sql.DB, byKey map[int64]*domain.Package) error {
	rows, err := db.QueryContext(ctx, queryFiles)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			key  int64
			name string
		)
		if err := rows.Scan(&key, &name); err != nil {
			return err
		}
		if pkg, ok := byKey[key]; ok {
			pkg.Files = append(pkg.Files, name)
		}
	}
	return rows.Err()
}
