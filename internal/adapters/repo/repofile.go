package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/ini.v1"
)

const repoFileExt = ".repo"

// mainSection holds global dnf options, not a repository.
const mainSection = "main"

// Vars holds the values substituted into .repo files.
type Vars struct {
	Arch       string
	ReleaseVer string
}

func (v Vars) replacer() *strings.Replacer {
	basearch := domain.BaseArch(v.Arch)
	return strings.NewReplacer(
		"${basearch}", basearch,
		"$basearch", basearch,
		"${arch}", v.Arch,
		"$arch", v.Arch,
		"${releasever}", v.ReleaseVer,
		"$releasever", v.ReleaseVer,
	)
}

// ReadRepoDirs parses every .repo file in dirs. Files are read in lexical order within a
// directory and sections in file order. Missing directories are skipped.
func ReadRepoDirs(dirs []string, vars Vars) ([]domain.RepoConfig, error) {
	var repos []domain.RepoConfig
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrRepoFileParseFailed.Error()), "dir", dir)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == repoFileExt {
				names = append(names, e.Name())
			}
		}
		slices.Sort(names)

		for _, name := range names {
			found, err := ReadRepoFile(filepath.Join(dir, name), vars)
			if err != nil {
				return nil, err
			}
			repos = append(repos, found...)
		}
	}
	return repos, nil
}

// ReadRepoFile parses one dnf-style .repo file.
func ReadRepoFile(path string, vars Vars) ([]domain.RepoConfig, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SkipUnrecognizableLines:    true,
	}, path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepoFileParseFailed.Error()), "path", path)
	}

	subst := vars.replacer()
	var repos []domain.RepoConfig
	for _, sec := range file.Sections() {
		id := sec.Name()
		if id == ini.DefaultSection || id == mainSection {
			continue
		}

		repo := domain.RepoConfig{
			ID:                id,
			Name:              subst.Replace(sec.Key("name").String()),
			BaseURL:           firstURL(subst.Replace(sec.Key("baseurl").String())),
			Enabled:           sec.Key("enabled").MustBool(true),
			SkipIfUnavailable: sec.Key("skip_if_unavailable").MustBool(false),
		}
		if repo.BaseURL == "" {
			// metalink and mirrorlist are not followed.
			repo.Enabled = false
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// firstURL returns the first entry of a whitespace or comma separated baseurl list.
func firstURL(s string) string {
	urls := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
