package domain

import (
	"strconv"
	"strings"
)

// Protocol keywords.
const (
	CmdWhatInstalled = "whatinstalled"
	CmdWhatAvailable = "whatavailable"
	CmdFlushCache    = "flushcache"
)

// noMatchToken fills the version and arch fields of a miss.
const noMatchToken = "nil"

// Command is one parsed protocol line.
type Command struct {
	Keyword string

	// Spec is the argument tokens rejoined with single spaces.
	Spec string

	// Lead is the first argument token, echoed back on a miss.
	Lead string
}

// ParseCommand splits a protocol line into keyword and specifier.
// It returns false for a blank line.
func ParseCommand(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	cmd := Command{Keyword: fields[0]}
	if args := fields[1:]; len(args) > 0 {
		cmd.Spec = strings.Join(args, " ")
		cmd.Lead = args[0]
	}
	return cmd, true
}

// FormatMatch renders a resolved package as "<name> <epoch>:<version>-<release> <arch>".
func FormatMatch(pkg *Package) string {
	return pkg.Name + " " + strconv.Itoa(pkg.Epoch) + ":" + pkg.Version + "-" + pkg.Release + " " + pkg.Arch
}

// FormatNoMatch renders a miss as "<lead> nil nil".
func FormatNoMatch(lead string) string {
	return lead + " " + noMatchToken + " " + noMatchToken
}
