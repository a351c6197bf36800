package config

// Sackfile represents the structure of the sackd.yaml configuration file.
type Sackfile struct {
	Arch               string        `yaml:"arch"`
	ReleaseVer         string        `yaml:"releasever"`
	ReposDir           []string      `yaml:"reposdir"`
	Installed          *InstalledDTO `yaml:"installed"`
	CacheDir           string        `yaml:"cache_dir"`
	OrphanPollInterval string        `yaml:"orphan_poll_interval"`
	Fetch              *FetchDTO     `yaml:"fetch"`
	Log                *LogDTO       `yaml:"log"`
	Repos              []RepoDTO     `yaml:"repos"`
}

// InstalledDTO locates the installed-package database.
type InstalledDTO struct {
	RPMDB    string `yaml:"rpmdb"`
	Snapshot string `yaml:"snapshot"`
}

// FetchDTO tunes remote metadata downloads.
type FetchDTO struct {
	Timeout    string `yaml:"timeout"`
	MaxRetries *int   `yaml:"max_retries"`
	UserAgent  string `yaml:"user_agent"`
}

// LogDTO configures the diagnostic log.
type LogDTO struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file"`
}

// RepoDTO represents a repository definition in the configuration.
type RepoDTO struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	BaseURL           string `yaml:"baseurl"`
	Metadata          string `yaml:"metadata"`
	Enabled           *bool  `yaml:"enabled"`
	SkipIfUnavailable bool   `yaml:"skip_if_unavailable"`
}
