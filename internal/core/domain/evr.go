package domain

import (
	"strconv"
	"strings"

	version "github.com/knqyf263/go-rpm-version"
)

// EVR is the epoch, version and release triple that orders package builds.
type EVR struct {
	Epoch   int
	Version string
	Release string
}

// ParseEVR splits "[epoch:]version[-release]" into its parts.
// A missing or non-numeric epoch is treated as 0.
func ParseEVR(s string) EVR {
	var evr EVR
	if i := strings.IndexByte(s, ':'); i >= 0 {
		if n, err := strconv.Atoi(s[:i]); err == nil && n >= 0 {
			evr.Epoch = n
		}
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		evr.Version = s[:i]
		evr.Release = s[i+1:]
	} else {
		evr.Version = s
	}
	return evr
}

// String formats the EVR as "epoch:version-release", dropping the release when empty.
func (e EVR) String() string {
	s := strconv.Itoa(e.Epoch) + ":" + e.Version
	if e.Release != "" {
		s += "-" + e.Release
	}
	return s
}

// CompareEVR orders two EVRs with rpm semantics.
// The release is only compared when both sides carry one, so "1.0" matches every "1.0-N".
func CompareEVR(a, b EVR) int {
	switch {
	case a.Epoch < b.Epoch:
		return -1
	case a.Epoch > b.Epoch:
		return 1
	}
	if c := CompareVersion(a.Version, b.Version); c != 0 {
		return c
	}
	if a.Release == "" || b.Release == "" {
		return 0
	}
	return CompareVersion(a.Release, b.Release)
}

// CompareVersion compares two version (or release) strings segment by segment:
// numeric segments numerically, alphabetic segments lexicographically.
func CompareVersion(a, b string) int {
	if a == b {
		return 0
	}
	return version.NewVersion(a).Compare(version.NewVersion(b))
}
