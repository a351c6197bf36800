package domain

import (
	"strconv"
	"strings"
)

// SystemRepo is the repository id carried by installed packages.
const SystemRepo = "@System"

// Package is one build of a package as recorded by a repository or the installed database.
type Package struct {
	Name    string
	Epoch   int
	Version string
	Release string
	Arch    string

	// Repo is the id of the repository the record came from, SystemRepo when installed.
	Repo string

	// Provides lists the capabilities the package declares, including its own name.
	Provides []Capability

	// Files lists the paths the package installs. Repository metadata usually only
	// carries the "primary" subset (binaries and /etc).
	Files []string
}

// EVR returns the package's epoch, version and release.
func (p *Package) EVR() EVR {
	return EVR{Epoch: p.Epoch, Version: p.Version, Release: p.Release}
}

// Installed reports whether the record comes from the installed-package database.
func (p *Package) Installed() bool {
	return p.Repo == SystemRepo
}

// NEVRA formats the package as "name-[epoch:]version-release.arch".
func (p *Package) NEVRA() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte('-')
	if p.Epoch > 0 {
		b.WriteString(strconv.Itoa(p.Epoch))
		b.WriteByte(':')
	}
	b.WriteString(p.Version)
	b.WriteByte('-')
	b.WriteString(p.Release)
	b.WriteByte('.')
	b.WriteString(p.Arch)
	return b.String()
}

// String implements fmt.Stringer.
func (p *Package) String() string {
	return p.NEVRA()
}

// InstallState selects which half of the index a query runs against.
type InstallState int

const (
	// Available selects packages offered by repositories.
	Available InstallState = iota
	// Installed selects packages from the installed-package database.
	Installed
)

// String implements fmt.Stringer.
func (s InstallState) String() string {
	if s == Installed {
		return "installed"
	}
	return "available"
}

// Matches reports whether pkg belongs to the selected half of the index.
func (s InstallState) Matches(pkg *Package) bool {
	return pkg.Installed() == (s == Installed)
}
