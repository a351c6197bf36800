package domain

import "time"

// Config is the resolved daemon configuration.
type Config struct {
	// Arch overrides the detected host architecture when set.
	Arch string

	// ReleaseVer substitutes $releasever in .repo files.
	ReleaseVer string

	// ReposDirs are scanned for dnf-style .repo files on every index build.
	ReposDirs []string

	// Installed locates the installed-package database.
	Installed InstalledConfig

	// Repos are repositories declared directly in the config file.
	Repos []RepoConfig

	// CacheDir holds downloaded repository metadata.
	CacheDir string

	// OrphanPollInterval is how often the parent is re-checked while waiting for input.
	OrphanPollInterval time.Duration

	Fetch FetchConfig
	Log   LogConfig
}

// InstalledConfig locates installed-package metadata.
type InstalledConfig struct {
	// RPMDB is an rpm database file or the directory that contains one.
	RPMDB string

	// Snapshot is a primary.xml-format listing of installed packages. It takes
	// precedence over RPMDB when set.
	Snapshot string
}

// RepoConfig describes one repository.
type RepoConfig struct {
	ID   string
	Name string

	// BaseURL is the repository root (http, https or file); repodata/repomd.xml is read from it.
	BaseURL string

	// Metadata is a direct path to a primary metadata file, bypassing repomd.xml.
	Metadata string

	Enabled           bool
	SkipIfUnavailable bool
}

// FetchConfig tunes remote metadata downloads.
type FetchConfig struct {
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

// LogConfig configures the diagnostic log. The protocol never goes through it.
type LogConfig struct {
	Level string
	JSON  bool
	File  string
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		ReposDirs:          []string{DefaultReposDir},
		Installed:          InstalledConfig{RPMDB: DefaultRPMDBPath},
		CacheDir:           DefaultCacheDir,
		OrphanPollInterval: DefaultOrphanPollInterval,
		Fetch: FetchConfig{
			Timeout:    DefaultFetchTimeout,
			MaxRetries: DefaultFetchRetries,
			UserAgent:  DefaultUserAgent,
		},
		Log: LogConfig{Level: "info"},
	}
}
