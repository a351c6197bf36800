package ports

import (
	"context"

	"go.trai.ch/sackd/internal/core/domain"
)

// RepositoryLoader reads every configured package source.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type RepositoryLoader interface {
	// LoadAll returns the installed packages (Repo == domain.SystemRepo) followed by
	// the packages of every enabled repository, in configuration order.
	LoadAll(ctx context.Context) ([]*domain.Package, error)
}

// ArchDetector reports the native architecture of the host.
type ArchDetector interface {
	// DetectArch returns the rpm base architecture, e.g. "x86_64".
	DetectArch() (string, error)
}

// LoaderFactory builds the repository loader for a configuration.
type LoaderFactory interface {
	NewLoader(cfg *domain.Config) (RepositoryLoader, error)
}
