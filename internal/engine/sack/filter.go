package sack

import (
	"slices"

	"go.trai.ch/sackd/internal/core/domain"
)

// fieldFilter applies the per-package predicates of a FilterSpec after index narrowing.
type fieldFilter struct {
	arches    []string
	state     domain.InstallState
	withState bool
	epoch     *int
	version   *matcher
	release   *matcher
}

func newFieldFilter(spec domain.FilterSpec, withState bool) (fieldFilter, bool) {
	f := fieldFilter{
		arches:    spec.Arches,
		state:     spec.State,
		withState: withState,
		epoch:     spec.Epoch,
	}
	if spec.Version != "" {
		m, ok := newMatcher(spec.Version)
		if !ok {
			return f, false
		}
		f.version = &m
	}
	if spec.Release != "" {
		m, ok := newMatcher(spec.Release)
		if !ok {
			return f, false
		}
		f.release = &m
	}
	return f, true
}

func (f fieldFilter) match(p *domain.Package) bool {
	switch {
	case f.withState && !f.state.Matches(p):
		return false
	case len(f.arches) > 0 && !slices.Contains(f.arches, p.Arch):
		return false
	case f.epoch != nil && *f.epoch != p.Epoch:
		return false
	case f.version != nil && !f.version.match(p.Version):
		return false
	case f.release != nil && !f.release.match(p.Release):
		return false
	}
	return true
}
