// Package sack holds the in-memory index of installed and available packages and answers
// filtered queries against it.
package sack

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/sackd/internal/core/domain"
)

// Sack is an immutable, indexed snapshot of package metadata.
// Query results are always returned in index order, which is load order.
type Sack struct {
	pkgs      []*domain.Package
	byName    map[string][]int
	byProvide map[string][]int
	byFile    map[string][]int
}

// New indexes pkgs. The slice is retained; callers must not modify it afterwards.
func New(pkgs []*domain.Package) *Sack {
	s := &Sack{
		pkgs:      pkgs,
		byName:    make(map[string][]int),
		byProvide: make(map[string][]int),
		byFile:    make(map[string][]int),
	}
	for i, p := range pkgs {
		s.byName[p.Name] = append(s.byName[p.Name], i)
		s.byProvide[p.Name] = appendOnce(s.byProvide[p.Name], i)
		for _, c := range p.Provides {
			s.byProvide[c.Name] = appendOnce(s.byProvide[c.Name], i)
		}
		for _, f := range p.Files {
			s.byFile[f] = appendOnce(s.byFile[f], i)
		}
	}
	return s
}

// appendOnce appends i unless it is already the last element; indexes are added in ascending order.
func appendOnce(ids []int, i int) []int {
	if n := len(ids); n > 0 && ids[n-1] == i {
		return ids
	}
	return append(ids, i)
}

// Len returns the number of indexed packages.
func (s *Sack) Len() int {
	return len(s.pkgs)
}

// Query returns the packages matching every non-empty field of spec.
func (s *Sack) Query(spec domain.FilterSpec) []*domain.Package {
	var out []*domain.Package
	for p := range s.matches(spec, true) {
		out = append(out, p)
	}
	return out
}

// Contains reports whether any package, installed or available, matches spec.
// The State field is ignored.
func (s *Sack) Contains(spec domain.FilterSpec) bool {
	for range s.matches(spec, false) {
		return true
	}
	return false
}

// matches yields matching packages in index order.
func (s *Sack) matches(spec domain.FilterSpec, withState bool) iter.Seq[*domain.Package] {
	return func(yield func(*domain.Package) bool) {
		ids, ok := s.candidates(spec)
		if !ok {
			return
		}
		f, ok := newFieldFilter(spec, withState)
		if !ok {
			return
		}
		for _, i := range ids {
			p := s.pkgs[i]
			if f.match(p) && !yield(p) {
				return
			}
		}
	}
}

// candidates narrows the scan with the name and provides indexes.
// The second return is false when a pattern cannot match anything.
func (s *Sack) candidates(spec domain.FilterSpec) ([]int, bool) {
	var ids []int
	switch {
	case spec.Name != "":
		m, ok := newMatcher(spec.Name)
		if !ok {
			return nil, false
		}
		ids = s.lookup(s.byName, m)
	case spec.Provides != "":
		ids = s.whatProvides(spec.Provides)
	default:
		ids = make([]int, len(s.pkgs))
		for i := range ids {
			ids[i] = i
		}
		return ids, true
	}
	if spec.Name != "" && spec.Provides != "" {
		ids = intersect(ids, s.whatProvides(spec.Provides))
	}
	return ids, true
}

// lookup collects the indexes stored under every key m matches, in ascending order.
func (s *Sack) lookup(index map[string][]int, m matcher) []int {
	if !m.isGlob() {
		return index[m.exact]
	}
	var ids []int
	for key, v := range index {
		if m.match(key) {
			ids = append(ids, v...)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// whatProvides resolves a capability string: an absolute path is matched against file
// lists and path provides, anything else against provide names with version overlap.
func (s *Sack) whatProvides(capability string) []int {
	req, ok := domain.ParseCapability(capability)
	if !ok {
		return nil
	}
	m, ok := newMatcher(req.Name)
	if !ok {
		return nil
	}

	var ids []int
	if strings.HasPrefix(req.Name, "/") && !req.Versioned() {
		ids = append(ids, s.lookup(s.byFile, m)...)
	}
	for _, i := range s.lookup(s.byProvide, m) {
		if provides(s.pkgs[i], m, req) {
			ids = append(ids, i)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// provides reports whether p declares a capability named by m that satisfies req.
// Every package implicitly provides "name = epoch:version-release".
func provides(p *domain.Package, m matcher, req domain.Capability) bool {
	if m.match(p.Name) {
		self := domain.Capability{Name: p.Name, Flags: domain.FlagEQ, EVR: p.EVR()}
		if self.Overlaps(req) {
			return true
		}
	}
	for _, c := range p.Provides {
		if m.match(c.Name) && c.Overlaps(req) {
			return true
		}
	}
	return false
}

func intersect(a, b []int) []int {
	var out []int
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
