package domain

import (
	"strings"
)

// CapFlags is the comparison operator of a versioned capability.
type CapFlags string

// Comparison operators as spelled in repository metadata.
const (
	FlagNone CapFlags = ""
	FlagEQ   CapFlags = "EQ"
	FlagLT   CapFlags = "LT"
	FlagLE   CapFlags = "LE"
	FlagGT   CapFlags = "GT"
	FlagGE   CapFlags = "GE"
)

var operatorFlags = map[string]CapFlags{
	"=":  FlagEQ,
	"==": FlagEQ,
	"<":  FlagLT,
	"<=": FlagLE,
	"=<": FlagLE,
	">":  FlagGT,
	">=": FlagGE,
	"=>": FlagGE,
}

// ParseOperator maps a relational operator such as ">=" to its flags.
func ParseOperator(op string) (CapFlags, bool) {
	f, ok := operatorFlags[op]
	return f, ok
}

func (f CapFlags) less() bool    { return f == FlagLT || f == FlagLE }
func (f CapFlags) greater() bool { return f == FlagGT || f == FlagGE }
func (f CapFlags) equal() bool   { return f == FlagEQ || f == FlagLE || f == FlagGE }

// Capability is a named thing a package provides, optionally with a version constraint.
type Capability struct {
	Name  string
	Flags CapFlags
	EVR   EVR
}

// ParseCapability parses "name" or "name OP [epoch:]version[-release]".
// The second return is false when the string is not a well-formed capability.
func ParseCapability(s string) (Capability, bool) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return Capability{Name: fields[0]}, true
	case 3:
		flags, ok := ParseOperator(fields[1])
		if !ok {
			return Capability{}, false
		}
		return Capability{Name: fields[0], Flags: flags, EVR: ParseEVR(fields[2])}, true
	default:
		return Capability{}, false
	}
}

// Versioned reports whether the capability carries a version constraint.
func (c Capability) Versioned() bool {
	return c.Flags != FlagNone && c.EVR.Version != ""
}

// String formats the capability the way rpm prints it.
func (c Capability) String() string {
	if !c.Versioned() {
		return c.Name
	}
	op := map[CapFlags]string{FlagEQ: "=", FlagLT: "<", FlagLE: "<=", FlagGT: ">", FlagGE: ">="}[c.Flags]
	return c.Name + " " + op + " " + c.EVR.String()
}

// Overlaps reports whether the version ranges of a provided and a required capability
// intersect. An unversioned side matches anything. Names are not compared.
func (c Capability) Overlaps(req Capability) bool {
	if !c.Versioned() || !req.Versioned() {
		return true
	}
	sense := CompareEVR(c.EVR, req.EVR)
	switch {
	case sense < 0:
		return c.Flags.greater() || req.Flags.less()
	case sense > 0:
		return c.Flags.less() || req.Flags.greater()
	default:
		return (c.Flags.equal() && req.Flags.equal()) ||
			(c.Flags.less() && req.Flags.less()) ||
			(c.Flags.greater() && req.Flags.greater())
	}
}
