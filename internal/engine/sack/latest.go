package sack

import "go.trai.ch/sackd/internal/core/domain"

type nameArch struct {
	name string
	arch string
}

// Latest reduces pkgs to the highest EVR of each name and arch. Groups keep the order in
// which they first appear, and an exact EVR tie keeps the earlier package.
func Latest(pkgs []*domain.Package) []*domain.Package {
	best := make(map[nameArch]int, len(pkgs))
	var out []*domain.Package
	for _, p := range pkgs {
		key := nameArch{name: p.Name, arch: p.Arch}
		i, seen := best[key]
		if !seen {
			best[key] = len(out)
			out = append(out, p)
			continue
		}
		if domain.CompareEVR(p.EVR(), out[i].EVR()) > 0 {
			out[i] = p
		}
	}
	return out
}
