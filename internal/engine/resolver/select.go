package resolver

import (
	"slices"
	"strings"

	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/engine/sack"
)

// SelectBest reduces candidates to the latest build per name and arch and returns one of
// them, or nil when there are none. Ties between groups are broken by name ascending, then
// higher EVR, then a real arch over noarch, then arch ascending.
func SelectBest(candidates []*domain.Package) *domain.Package {
	latest := sack.Latest(candidates)
	if len(latest) == 0 {
		return nil
	}
	return slices.MinFunc(latest, compareBest)
}

func compareBest(a, b *domain.Package) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := domain.CompareEVR(a.EVR(), b.EVR()); c != 0 {
		return -c
	}
	if an, bn := a.Arch == domain.NoArch, b.Arch == domain.NoArch; an != bn {
		if an {
			return 1
		}
		return -1
	}
	return strings.Compare(a.Arch, b.Arch)
}
