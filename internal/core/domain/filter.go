package domain

// FilterSpec describes one candidate query against the index.
// Empty fields do not filter.
type FilterSpec struct {
	// Arches restricts the architecture; empty means any.
	Arches []string

	// State selects installed or available packages.
	State InstallState

	// Name matches the package name; glob characters are honored.
	Name string

	// Epoch matches the epoch exactly when non-nil.
	Epoch *int

	// Version and Release match the corresponding fields; glob characters are honored.
	Version string
	Release string

	// Provides matches a capability string: a provide name, a "name OP evr" relation,
	// or an absolute file path. Glob characters are honored in the name.
	Provides string
}

// ArchSet returns the architecture set a query resolves against: noarch plus arch.
func ArchSet(arch string) []string {
	if arch == NoArch || arch == "" {
		return []string{NoArch}
	}
	return []string{NoArch, arch}
}
