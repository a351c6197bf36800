// Package detector inspects the host the daemon runs on.
package detector

import (
	"runtime"

	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

var _ ports.ArchDetector = (*Arch)(nil)

// Arch detects the rpm base architecture from uname(2), falling back to GOARCH.
type Arch struct {
	uname func(*unix.Utsname) error
}

// NewArch creates an Arch detector backed by unix.Uname.
func NewArch() *Arch {
	return &Arch{uname: unix.Uname}
}

// DetectArch implements ports.ArchDetector.
func (a *Arch) DetectArch() (string, error) {
	var u unix.Utsname
	if err := a.uname(&u); err == nil {
		if machine := unix.ByteSliceToString(u.Machine[:]); machine != "" {
			return domain.ArchFromMachine(machine), nil
		}
	}
	if arch, ok := domain.ArchFromGOARCH(runtime.GOARCH); ok {
		return arch, nil
	}
	return "", zerr.With(domain.ErrArchDetectFailed, "goarch", runtime.GOARCH)
}
