// Package nevra splits free-form package specifiers into the name, epoch, version,
// release and architecture readings they admit.
package nevra

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gobwas/glob"
	"go.trai.ch/sackd/internal/core/domain"
)

// Form identifies which NEVRA fields a possibility carries.
type Form int

// Forms in the order they are tried.
const (
	FormNEVRA Form = iota
	FormNEVR
	FormNEV
	FormNA
	FormName
)

var formNames = [...]string{"nevra", "nevr", "nev", "na", "name"}

// String implements fmt.Stringer.
func (f Form) String() string {
	if int(f) < len(formNames) {
		return formNames[f]
	}
	return "unknown"
}

// Possibility is one reading of a specifier. Name, Version and Release may hold glob patterns.
type Possibility struct {
	Form    Form
	Name    string
	Epoch   *int
	Version string
	Release string
	Arch    string

	// Relation marks a "name OP evr" capability; only its name is meaningful.
	Relation bool
}

// HasArch reports whether the possibility names an explicit architecture.
func (p Possibility) HasArch() bool {
	return p.Arch != ""
}

// Filter converts the possibility into a query over the given state.
func (p Possibility) Filter(state domain.InstallState) domain.FilterSpec {
	spec := domain.FilterSpec{
		State:   state,
		Name:    p.Name,
		Epoch:   p.Epoch,
		Version: p.Version,
		Release: p.Release,
	}
	if p.HasArch() {
		spec.Arches = []string{p.Arch}
	}
	return spec
}

// Parse returns every reading of spec in form order. A specifier containing whitespace
// only parses as a relational capability; anything else that fits no form yields nil.
func Parse(spec string) []Possibility {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil
	}
	if strings.IndexFunc(spec, unicode.IsSpace) >= 0 {
		return parseRelation(spec)
	}

	var out []Possibility
	if p, ok := parseNEVRA(spec); ok {
		out = append(out, p)
	}
	if p, ok := parseNEVR(spec); ok {
		out = append(out, p)
	}
	if p, ok := parseNEV(spec); ok {
		out = append(out, p)
	}
	if p, ok := parseNA(spec); ok {
		out = append(out, p)
	}
	if validPattern(spec) {
		out = append(out, Possibility{Form: FormName, Name: spec})
	}
	return out
}

func parseRelation(spec string) []Possibility {
	c, ok := domain.ParseCapability(spec)
	if !ok || !c.Versioned() || !validPattern(c.Name) {
		return nil
	}
	return []Possibility{{Form: FormName, Name: c.Name, Relation: true}}
}

func parseNEVRA(s string) (Possibility, bool) {
	rest, arch, ok := splitArch(s)
	if !ok {
		return Possibility{}, false
	}
	p, ok := parseNEVR(rest)
	if !ok {
		return Possibility{}, false
	}
	p.Form = FormNEVRA
	p.Arch = arch
	return p, true
}

func parseNEVR(s string) (Possibility, bool) {
	rest, release, ok := cutLast(s, '-')
	if !ok || !validPattern(release) {
		return Possibility{}, false
	}
	p, ok := parseNEV(rest)
	if !ok {
		return Possibility{}, false
	}
	p.Form = FormNEVR
	p.Release = release
	return p, true
}

func parseNEV(s string) (Possibility, bool) {
	name, ev, ok := cutLast(s, '-')
	if !ok || !validPattern(name) {
		return Possibility{}, false
	}
	p := Possibility{Form: FormNEV, Name: name, Version: ev}
	if e, v, found := strings.Cut(ev, ":"); found {
		n, err := strconv.Atoi(e)
		if err != nil || n < 0 || v == "" {
			return Possibility{}, false
		}
		p.Epoch = &n
		p.Version = v
	}
	if strings.ContainsRune(p.Version, ':') || !validPattern(p.Version) {
		return Possibility{}, false
	}
	return p, true
}

func parseNA(s string) (Possibility, bool) {
	name, arch, ok := splitArch(s)
	if !ok || !validPattern(name) {
		return Possibility{}, false
	}
	return Possibility{Form: FormNA, Name: name, Arch: arch}, true
}

// splitArch cuts a trailing ".arch" when arch is a known architecture.
func splitArch(s string) (rest, arch string, ok bool) {
	rest, arch, ok = cutLast(s, '.')
	if !ok || !domain.IsKnownArch(arch) {
		return "", "", false
	}
	return rest, arch, true
}

// cutLast splits s around the last sep, requiring both halves to be non-empty.
func cutLast(s string, sep byte) (before, after string, ok bool) {
	i := strings.LastIndexByte(s, sep)
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// validPattern rejects empty fields and glob patterns that do not compile.
func validPattern(s string) bool {
	if s == "" {
		return false
	}
	if !IsGlob(s) {
		return true
	}
	_, err := glob.Compile(s)
	return err == nil
}

// IsGlob reports whether s contains glob metacharacters.
func IsGlob(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
