package nevra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/engine/nevra"
)

func intPtr(n int) *int { return &n }

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []nevra.Possibility
	}{
		{
			name: "plain name",
			spec: "bash",
			want: []nevra.Possibility{{Form: nevra.FormName, Name: "bash"}},
		},
		{
			name: "name and arch",
			spec: "bash.x86_64",
			want: []nevra.Possibility{
				{Form: nevra.FormNA, Name: "bash", Arch: "x86_64"},
				{Form: nevra.FormName, Name: "bash.x86_64"},
			},
		},
		{
			name: "full nevra",
			spec: "bash-5.1-1.x86_64",
			want: []nevra.Possibility{
				{Form: nevra.FormNEVRA, Name: "bash", Version: "5.1", Release: "1", Arch: "x86_64"},
				{Form: nevra.FormNEVR, Name: "bash", Version: "5.1", Release: "1.x86_64"},
				{Form: nevra.FormNEV, Name: "bash-5.1", Version: "1.x86_64"},
				{Form: nevra.FormNA, Name: "bash-5.1-1", Arch: "x86_64"},
				{Form: nevra.FormName, Name: "bash-5.1-1.x86_64"},
			},
		},
		{
			name: "epoch",
			spec: "foo-1:2.0-3",
			want: []nevra.Possibility{
				{Form: nevra.FormNEVR, Name: "foo", Epoch: intPtr(1), Version: "2.0", Release: "3"},
				{Form: nevra.FormNEV, Name: "foo-1:2.0", Version: "3"},
				{Form: nevra.FormName, Name: "foo-1:2.0-3"},
			},
		},
		{
			name: "unknown arch suffix is not an arch",
			spec: "python-3.11",
			want: []nevra.Possibility{
				{Form: nevra.FormNEV, Name: "python", Version: "3.11"},
				{Form: nevra.FormName, Name: "python-3.11"},
			},
		},
		{
			name: "glob name",
			spec: "ba*",
			want: []nevra.Possibility{{Form: nevra.FormName, Name: "ba*"}},
		},
		{
			name: "relational capability",
			spec: "perl(Carp) >= 1.50",
			want: []nevra.Possibility{{Form: nevra.FormName, Name: "perl(Carp)", Relation: true}},
		},
		{
			name: "words without operator",
			spec: "foo bar",
		},
		{
			name: "empty",
			spec: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nevra.Parse(tt.spec))
		})
	}
}

func TestPossibility_Filter(t *testing.T) {
	poss := nevra.Parse("bash-5.1-1.x86_64")
	require.NotEmpty(t, poss)

	spec := poss[0].Filter(domain.Installed)
	assert.Equal(t, domain.FilterSpec{
		Arches:  []string{"x86_64"},
		State:   domain.Installed,
		Name:    "bash",
		Version: "5.1",
		Release: "1",
	}, spec)

	assert.True(t, poss[0].HasArch())
	assert.False(t, poss[1].HasArch())
	assert.Equal(t, "nevra", poss[0].Form.String())
}

func TestIsGlob(t *testing.T) {
	assert.True(t, nevra.IsGlob("ba*"))
	assert.True(t, nevra.IsGlob("lib?"))
	assert.True(t, nevra.IsGlob("[ab]c"))
	assert.False(t, nevra.IsGlob("perl(Carp)"))
}
