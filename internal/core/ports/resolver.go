package ports

import (
	"context"

	"go.trai.ch/sackd/internal/core/domain"
)

// PackageResolver answers best-match lookups against a cached package index.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PackageResolver interface {
	// Resolve returns the best match for spec in the requested install state,
	// or nil when nothing matches. Errors only come from building the index.
	Resolve(ctx context.Context, spec string, state domain.InstallState) (*domain.Package, error)

	// Flush discards the cached index; the next Resolve rebuilds it.
	Flush()
}
