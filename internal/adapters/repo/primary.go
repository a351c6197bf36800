package repo

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/zerr"
)

// packageDTO is one <package> element of primary.xml. Element names are matched without
// their rpm: namespace prefix.
type packageDTO struct {
	Type    string `xml:"type,attr"`
	Name    string `xml:"name"`
	Arch    string `xml:"arch"`
	Version struct {
		Epoch string `xml:"epoch,attr"`
		Ver   string `xml:"ver,attr"`
		Rel   string `xml:"rel,attr"`
	} `xml:"version"`
	Format struct {
		Provides []entryDTO `xml:"provides>entry"`
		Files    []string   `xml:"file"`
	} `xml:"format"`
}

type entryDTO struct {
	Name  string `xml:"name,attr"`
	Flags string `xml:"flags,attr"`
	Epoch string `xml:"epoch,attr"`
	Ver   string `xml:"ver,attr"`
	Rel   string `xml:"rel,attr"`
}

// ParsePrimaryXML streams the packages of a primary.xml document. Every package is
// tagged with repoID.
func ParsePrimaryXML(r io.Reader, repoID string) ([]*domain.Package, error) {
	dec := xml.NewDecoder(r)
	var pkgs []*domain.Package
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return pkgs, nil
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPrimaryParseFailed.Error()), "repo", repoID)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "package" {
			continue
		}

		var dto packageDTO
		if err := dec.DecodeElement(&dto, &start); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPrimaryParseFailed.Error()), "repo", repoID)
		}
		if dto.Type != "" && dto.Type != "rpm" {
			continue
		}
		pkgs = append(pkgs, dto.toDomain(repoID))
	}
}

func (p *packageDTO) toDomain(repoID string) *domain.Package {
	pkg := &domain.Package{
		Name:    p.Name,
		Epoch:   parseEpoch(p.Version.Epoch),
		Version: p.Version.Ver,
		Release: p.Version.Rel,
		Arch:    p.Arch,
		Repo:    repoID,
		Files:   p.Format.Files,
	}
	if len(p.Format.Provides) > 0 {
		pkg.Provides = make([]domain.Capability, 0, len(p.Format.Provides))
		for _, e := range p.Format.Provides {
			pkg.Provides = append(pkg.Provides, newCapability(e.Name, e.Flags, e.Epoch, e.Ver, e.Rel))
		}
	}
	return pkg
}

// newCapability builds a capability from the split fields used by both primary formats.
func newCapability(name, flags, epoch, ver, rel string) domain.Capability {
	c := domain.Capability{Name: name, Flags: domain.CapFlags(strings.ToUpper(flags))}
	if ver != "" {
		c.EVR = domain.EVR{Epoch: parseEpoch(epoch), Version: ver, Release: rel}
	}
	return c
}

func parseEpoch(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
