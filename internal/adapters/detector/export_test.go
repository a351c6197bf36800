package detector

import "golang.org/x/sys/unix"

// NewArchWithUname creates an Arch detector with an injected uname call.
func NewArchWithUname(fn func(*unix.Utsname) error) *Arch {
	return &Arch{uname: fn}
}
