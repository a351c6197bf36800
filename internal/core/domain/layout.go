package domain

import (
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the daemon configuration file.
	ConfigFileName = "sackd.yaml"

	// SystemConfigDir is the directory searched for a system-wide configuration file.
	SystemConfigDir = "/etc/sackd"

	// DefaultReposDir is the dnf-style directory of .repo files.
	DefaultReposDir = "/etc/yum.repos.d"

	// DefaultRPMDBPath is the default location of the installed-package database.
	DefaultRPMDBPath = "/var/lib/rpm"

	// DefaultCacheDir is the default directory for downloaded repository metadata.
	DefaultCacheDir = "/var/cache/sackd"

	// DefaultOrphanPollInterval is how often the dispatcher re-checks its parent while idle.
	DefaultOrphanPollInterval = time.Second

	// DefaultFetchTimeout bounds a single metadata download.
	DefaultFetchTimeout = 60 * time.Second

	// DefaultFetchRetries is the number of retries for a failed metadata download.
	DefaultFetchRetries = 3

	// DefaultUserAgent is sent with every metadata request.
	DefaultUserAgent = "sackd"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// SystemConfigPath returns the system-wide configuration file path.
func SystemConfigPath() string {
	return filepath.Join(SystemConfigDir, ConfigFileName)
}

// RepoCachePath returns the metadata cache directory for one repository.
func RepoCachePath(cacheDir, repoID string) string {
	return filepath.Join(cacheDir, repoID)
}
