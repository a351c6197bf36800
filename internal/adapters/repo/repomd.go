package repo

import (
	"crypto/sha1" //nolint:gosec // repomd.xml of older repositories still uses sha1.
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"hash"
	"io"
	"strings"

	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/zerr"
)

// repomdPath is the index file of a repository, relative to its base URL.
const repomdPath = "repodata/repomd.xml"

// Data types that carry primary metadata, in order of preference.
const (
	dataPrimary   = "primary"
	dataPrimaryDB = "primary_db"
)

type repomdDTO struct {
	Data []dataDTO `xml:"data"`
}

type dataDTO struct {
	Type     string      `xml:"type,attr"`
	Checksum checksumDTO `xml:"checksum"`
	Location struct {
		Href string `xml:"href,attr"`
	} `xml:"location"`
}

type checksumDTO struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// DataFile is one metadata file listed in repomd.xml.
type DataFile struct {
	Type         string
	Href         string
	ChecksumType string
	Checksum     string
}

// Key returns the cache key of the file.
func (d DataFile) Key() string {
	return d.ChecksumType + ":" + d.Checksum
}

// ParseRepoMD reads repomd.xml and returns the preferred primary data file.
func ParseRepoMD(r io.Reader) (DataFile, error) {
	var md repomdDTO
	if err := xml.NewDecoder(r).Decode(&md); err != nil {
		return DataFile{}, zerr.Wrap(err, domain.ErrRepoMDParseFailed.Error())
	}

	for _, want := range []string{dataPrimary, dataPrimaryDB} {
		for _, d := range md.Data {
			if d.Type != want || d.Location.Href == "" {
				continue
			}
			return DataFile{
				Type:         d.Type,
				Href:         d.Location.Href,
				ChecksumType: strings.ToLower(d.Checksum.Type),
				Checksum:     strings.ToLower(strings.TrimSpace(d.Checksum.Value)),
			}, nil
		}
	}
	return DataFile{}, domain.ErrPrimaryNotFound
}

func newHash(kind string) (hash.Hash, error) {
	switch kind {
	case "sha256":
		return sha256.New(), nil
	case "sha", "sha1":
		return sha1.New(), nil //nolint:gosec // see import.
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, zerr.With(domain.ErrUnsupportedChecksum, "type", kind)
	}
}

// verifyingReader hashes everything read through it and fails at EOF when the digest
// does not match.
type verifyingReader struct {
	r    io.Reader
	h    hash.Hash
	want string
}

func newVerifyingReader(r io.Reader, file DataFile) (io.Reader, error) {
	h, err := newHash(file.ChecksumType)
	if err != nil {
		return nil, err
	}
	return &verifyingReader{r: r, h: h, want: file.Checksum}, nil
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	v.h.Write(p[:n])
	if errors.Is(err, io.EOF) {
		if got := hex.EncodeToString(v.h.Sum(nil)); got != v.want {
			return n, zerr.With(zerr.With(domain.ErrChecksumMismatch, "want", v.want), "got", got)
		}
	}
	return n, err
}
