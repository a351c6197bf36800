package ports

import "io"

// MetadataStore caches downloaded repository metadata by content checksum.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type MetadataStore interface {
	// Lookup returns the path of a cached file for repoID with the given checksum.
	Lookup(repoID, checksum string) (string, bool)

	// Put stores r under repoID and checksum and returns the cached file path.
	// Older entries of the same repository are pruned.
	Put(repoID, checksum string, r io.Reader) (string, error)
}
