package repo

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"go.trai.ch/zerr"
)

// Format is the content type of a metadata file, detected from its leading bytes.
type Format int

// Metadata formats.
const (
	FormatXML Format = iota
	FormatSQLite
)

var (
	magicGzip   = []byte{0x1f, 0x8b}
	magicXZ     = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZstd   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicBzip2  = []byte("BZh")
	magicSQLite = []byte("SQLite format 3\x00")
)

// decompress returns a reader over the uncompressed content of r, whichever of gzip, xz,
// zstd or bzip2 it uses. Uncompressed input is passed through.
func decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(magicXZ))

	switch {
	case bytes.HasPrefix(head, magicGzip):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to open gzip stream")
		}
		return zr, nil
	case bytes.HasPrefix(head, magicXZ):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to open xz stream")
		}
		return io.NopCloser(xr), nil
	case bytes.HasPrefix(head, magicZstd):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to open zstd stream")
		}
		return zr.IOReadCloser(), nil
	case bytes.HasPrefix(head, magicBzip2):
		return io.NopCloser(bzip2.NewReader(br)), nil
	default:
		return io.NopCloser(br), nil
	}
}

// sniff reports the format of already decompressed content and returns a reader that
// still yields every byte.
func sniff(r io.Reader) (Format, io.Reader) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(magicSQLite))
	if bytes.Equal(head, magicSQLite) {
		return FormatSQLite, br
	}
	return FormatXML, br
}
