package sack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/engine/sack"
)

func pkg(name, evr, arch, repo string, provides ...string) *domain.Package {
	e := domain.ParseEVR(evr)
	p := &domain.Package{
		Name:    name,
		Epoch:   e.Epoch,
		Version: e.Version,
		Release: e.Release,
		Arch:    arch,
		Repo:    repo,
	}
	for _, s := range provides {
		c, _ := domain.ParseCapability(s)
		p.Provides = append(p.Provides, c)
	}
	return p
}

func names(pkgs []*domain.Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.NEVRA())
	}
	return out
}

func fixture() *sack.Sack {
	bash := pkg("bash", "5.1-1", "x86_64", domain.SystemRepo, "/bin/sh")
	bash.Files = []string{"/usr/bin/bash", "/etc/skel/.bashrc"}
	return sack.New([]*domain.Package{
		bash,
		pkg("bash", "5.2-3", "x86_64", "fedora", "/bin/sh"),
		pkg("bash", "5.2-3", "i686", "fedora"),
		pkg("perl-Carp", "1.52-1", "noarch", "fedora", "perl(Carp) = 1.52"),
		pkg("perl-Carp", "1.50-2", "noarch", "updates", "perl(Carp) = 1.50"),
		pkg("zsh", "5.9-1", "x86_64", "fedora", "/bin/sh"),
	})
}

func TestSack_QueryByName(t *testing.T) {
	s := fixture()
	require.Equal(t, 6, s.Len())

	got := s.Query(domain.FilterSpec{Name: "bash", State: domain.Available})
	assert.Equal(t, []string{"bash-5.2-3.x86_64", "bash-5.2-3.i686"}, names(got))

	got = s.Query(domain.FilterSpec{Name: "bash", State: domain.Installed})
	assert.Equal(t, []string{"bash-5.1-1.x86_64"}, names(got))

	got = s.Query(domain.FilterSpec{Name: "bash", Arches: domain.ArchSet("i686")})
	assert.Equal(t, []string{"bash-5.2-3.i686"}, names(got))
}

func TestSack_QueryGlobAndFields(t *testing.T) {
	s := fixture()

	got := s.Query(domain.FilterSpec{Name: "perl-*"})
	assert.Equal(t, []string{"perl-Carp-1.52-1.noarch", "perl-Carp-1.50-2.noarch"}, names(got))

	got = s.Query(domain.FilterSpec{Name: "perl-Carp", Version: "1.5?"})
	assert.Len(t, got, 2)

	got = s.Query(domain.FilterSpec{Name: "perl-Carp", Version: "1.50", Release: "2"})
	assert.Equal(t, []string{"perl-Carp-1.50-2.noarch"}, names(got))

	one := 1
	assert.Empty(t, s.Query(domain.FilterSpec{Name: "bash", Epoch: &one}))
	assert.Empty(t, s.Query(domain.FilterSpec{Name: "nope"}))
}

func TestSack_QueryProvides(t *testing.T) {
	s := fixture()

	tests := []struct {
		name     string
		provides string
		state    domain.InstallState
		want     []string
	}{
		{
			name:     "virtual capability",
			provides: "perl(Carp)",
			want:     []string{"perl-Carp-1.52-1.noarch", "perl-Carp-1.50-2.noarch"},
		},
		{
			name:     "versioned capability",
			provides: "perl(Carp) >= 1.51",
			want:     []string{"perl-Carp-1.52-1.noarch"},
		},
		{
			name:     "path provide",
			provides: "/bin/sh",
			want:     []string{"bash-5.2-3.x86_64", "zsh-5.9-1.x86_64"},
		},
		{
			name:     "file list",
			provides: "/usr/bin/bash",
			state:    domain.Installed,
			want:     []string{"bash-5.1-1.x86_64"},
		},
		{
			name:     "own name with version",
			provides: "bash = 5.2",
			want:     []string{"bash-5.2-3.x86_64", "bash-5.2-3.i686"},
		},
		{
			name:     "malformed capability",
			provides: "foo bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Query(domain.FilterSpec{Provides: tt.provides, State: tt.state})
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSack_Contains(t *testing.T) {
	s := fixture()

	assert.True(t, s.Contains(domain.FilterSpec{Name: "bash", Version: "5.1"}))
	assert.True(t, s.Contains(domain.FilterSpec{Name: "z*"}))
	assert.False(t, s.Contains(domain.FilterSpec{Name: "bash", Version: "9"}))
	assert.False(t, s.Contains(domain.FilterSpec{Name: "perl(Carp)"}))
}
