package detector

import (
	"os"

	"golang.org/x/term"
)

// Interactive reports whether f is attached to a terminal, meaning a person rather than a
// supervising process is typing protocol commands.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
