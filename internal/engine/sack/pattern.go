package sack

import (
	"github.com/gobwas/glob"
	"go.trai.ch/sackd/internal/engine/nevra"
)

// matcher matches a field value against an exact string or a glob pattern.
type matcher struct {
	exact string
	g     glob.Glob
}

func newMatcher(pattern string) (matcher, bool) {
	if !nevra.IsGlob(pattern) {
		return matcher{exact: pattern}, true
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return matcher{}, false
	}
	return matcher{g: g}, true
}

func (m matcher) isGlob() bool { return m.g != nil }

func (m matcher) match(s string) bool {
	if m.g != nil {
		return m.g.Match(s)
	}
	return s == m.exact
}
