package domain

// NoArch is the architecture of packages that run on every machine.
const NoArch = "noarch"

// knownArches is the set of rpm architecture names the resolver accepts in a specifier.
var knownArches = map[string]struct{}{
	NoArch:        {},
	"src":         {},
	"nosrc":       {},
	"i386":        {},
	"i486":        {},
	"i586":        {},
	"i686":        {},
	"athlon":      {},
	"geode":       {},
	"pentium3":    {},
	"pentium4":    {},
	"x86_64":      {},
	"amd64":       {},
	"ia32e":       {},
	"x86_64_v2":   {},
	"x86_64_v3":   {},
	"x86_64_v4":   {},
	"aarch64":     {},
	"armv5tel":    {},
	"armv5tejl":   {},
	"armv6l":      {},
	"armv6hl":     {},
	"armv7l":      {},
	"armv7hl":     {},
	"armv7hnl":    {},
	"armv8l":      {},
	"ppc":         {},
	"ppc64":       {},
	"ppc64le":     {},
	"ppc64p7":     {},
	"s390":        {},
	"s390x":       {},
	"riscv64":     {},
	"loongarch64": {},
	"mips":        {},
	"mipsel":      {},
	"mips64":      {},
	"mips64el":    {},
	"sparc":       {},
	"sparc64":     {},
	"sparcv9":     {},
	"alpha":       {},
	"ia64":        {},
}

// machineArches maps uname machine names to the rpm base architecture.
var machineArches = map[string]string{
	"x86_64":  "x86_64",
	"amd64":   "x86_64",
	"i386":    "i686",
	"i486":    "i686",
	"i586":    "i686",
	"i686":    "i686",
	"aarch64": "aarch64",
	"arm64":   "aarch64",
	"armv7l":  "armv7hl",
	"armv6l":  "armv6hl",
	"ppc64le": "ppc64le",
	"ppc64":   "ppc64",
	"s390x":   "s390x",
	"riscv64": "riscv64",
}

// goArches maps Go's GOARCH values to rpm architectures.
var goArches = map[string]string{
	"amd64":   "x86_64",
	"386":     "i686",
	"arm64":   "aarch64",
	"arm":     "armv7hl",
	"ppc64le": "ppc64le",
	"ppc64":   "ppc64",
	"s390x":   "s390x",
	"riscv64": "riscv64",
	"loong64": "loongarch64",
}

// IsKnownArch reports whether arch is an rpm architecture name.
func IsKnownArch(arch string) bool {
	_, ok := knownArches[arch]
	return ok
}

// ArchFromMachine maps a uname machine string to an rpm architecture.
// Unknown machines are returned unchanged.
func ArchFromMachine(machine string) string {
	if arch, ok := machineArches[machine]; ok {
		return arch
	}
	return machine
}

// ArchFromGOARCH maps a GOARCH value to an rpm architecture.
func ArchFromGOARCH(goarch string) (string, bool) {
	arch, ok := goArches[goarch]
	return arch, ok
}

// baseArches maps an architecture to the $basearch value used in repository URLs where
// the two differ.
var baseArches = map[string]string{
	"i486":     "i386",
	"i586":     "i386",
	"i686":     "i386",
	"athlon":   "i386",
	"armv7hl":  "armhfp",
	"armv7hnl": "armhfp",
	"armv6hl":  "armhfp",
	"amd64":    "x86_64",
}

// BaseArch returns the $basearch substitution for arch.
func BaseArch(arch string) string {
	if base, ok := baseArches[arch]; ok {
		return base
	}
	return arch
}
