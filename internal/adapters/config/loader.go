// Package config provides the configuration loader for sackd.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	// SearchPaths are tried in order when no explicit path is given.
	SearchPaths []string
}

// NewLoader creates a Loader searching the working directory, then the system directory.
func NewLoader() *Loader {
	return &Loader{
		SearchPaths: []string{domain.ConfigFileName, domain.SystemConfigPath()},
	}
}

// Load reads the configuration at path. With an empty path the search paths are tried
// and the defaults are returned when none exists.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		found, ok := l.find()
		if !ok {
			return domain.DefaultConfig(), nil
		}
		path = found
	}

	//nolint:gosec // The config path is chosen by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) find() (string, bool) {
	for _, p := range l.SearchPaths {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			// An unreadable candidate is surfaced by the read in Load.
			return p, true
		}
	}
	return "", false
}

// Parse decodes a sackd.yaml document on top of the defaults and validates it.
func Parse(data []byte) (*domain.Config, error) {
	var file Sackfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := domain.DefaultConfig()
	if err := apply(cfg, &file); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func apply(cfg *domain.Config, file *Sackfile) error {
	cfg.Arch = file.Arch
	cfg.ReleaseVer = file.ReleaseVer
	if file.ReposDir != nil {
		cfg.ReposDirs = file.ReposDir
	}
	if file.Installed != nil {
		cfg.Installed = domain.InstalledConfig{
			RPMDB:    file.Installed.RPMDB,
			Snapshot: file.Installed.Snapshot,
		}
	}
	if file.CacheDir != "" {
		cfg.CacheDir = filepath.Clean(file.CacheDir)
	}
	if file.OrphanPollInterval != "" {
		d, err := parseDuration("orphan_poll_interval", file.OrphanPollInterval)
		if err != nil {
			return err
		}
		cfg.OrphanPollInterval = d
	}
	if f := file.Fetch; f != nil {
		if f.Timeout != "" {
			d, err := parseDuration("fetch.timeout", f.Timeout)
			if err != nil {
				return err
			}
			cfg.Fetch.Timeout = d
		}
		if f.MaxRetries != nil {
			cfg.Fetch.MaxRetries = *f.MaxRetries
		}
		if f.UserAgent != "" {
			cfg.Fetch.UserAgent = f.UserAgent
		}
	}
	if lg := file.Log; lg != nil {
		if lg.Level != "" {
			cfg.Log.Level = lg.Level
		}
		cfg.Log.JSON = lg.JSON
		cfg.Log.File = lg.File
	}
	for _, r := range file.Repos {
		enabled := true
		if r.Enabled != nil {
			enabled = *r.Enabled
		}
		cfg.Repos = append(cfg.Repos, domain.RepoConfig{
			ID:                r.ID,
			Name:              r.Name,
			BaseURL:           r.BaseURL,
			Metadata:          r.Metadata,
			Enabled:           enabled,
			SkipIfUnavailable: r.SkipIfUnavailable,
		})
	}
	return nil
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "key", key)
	}
	return d, nil
}

func validate(cfg *domain.Config) error {
	if cfg.Arch != "" && !domain.IsKnownArch(cfg.Arch) {
		return zerr.With(domain.ErrConfigInvalid, "arch", cfg.Arch)
	}
	if cfg.OrphanPollInterval <= 0 {
		return zerr.With(domain.ErrConfigInvalid, "orphan_poll_interval", cfg.OrphanPollInterval.String())
	}
	if cfg.Fetch.MaxRetries < 0 {
		return zerr.With(domain.ErrConfigInvalid, "fetch.max_retries", cfg.Fetch.MaxRetries)
	}
	seen := make(map[string]struct{}, len(cfg.Repos))
	for _, r := range cfg.Repos {
		if r.ID == "" {
			return zerr.With(domain.ErrConfigInvalid, "repo", r.Name)
		}
		if _, dup := seen[r.ID]; dup {
			return zerr.With(domain.ErrConfigInvalid, "duplicate_repo", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.BaseURL == "" && r.Metadata == "" {
			return zerr.With(domain.ErrConfigInvalid, "repo_without_source", r.ID)
		}
	}
	return nil
}
