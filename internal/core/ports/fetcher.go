package ports

import (
	"context"
	"io"
)

// Fetcher downloads remote repository metadata.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch returns the body at url. The caller closes it.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}
