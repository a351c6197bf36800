package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sackd/internal/core/domain"
)

func TestParseCapability(t *testing.T) {
	c, ok := domain.ParseCapability("perl(Carp) >= 1.50")
	require.True(t, ok)
	assert.Equal(t, "perl(Carp)", c.Name)
	assert.Equal(t, domain.FlagGE, c.Flags)
	assert.Equal(t, "1.50", c.EVR.Version)
	assert.True(t, c.Versioned())
	assert.Equal(t, "perl(Carp) >= 0:1.50", c.String())

	c, ok = domain.ParseCapability("/usr/bin/bash")
	require.True(t, ok)
	assert.False(t, c.Versioned())

	_, ok = domain.ParseCapability("foo bar")
	assert.False(t, ok)

	_, ok = domain.ParseCapability("foo ~ 1.0")
	assert.False(t, ok)
}

func TestCapability_Overlaps(t *testing.T) {
	provide := func(s string) domain.Capability {
		c, ok := domain.ParseCapability(s)
		require.True(t, ok)
		return c
	}

	tests := []struct {
		name     string
		provided string
		required string
		want     bool
	}{
		{"unversioned provide", "foo", "foo >= 2", true},
		{"unversioned require", "foo = 1.0-1", "foo", true},
		{"equal versions", "foo = 1.0-1", "foo = 1.0", true},
		{"greater equal satisfied", "foo = 2.0-1", "foo >= 1.5", true},
		{"greater equal unsatisfied", "foo = 1.0-1", "foo >= 1.5", false},
		{"less than satisfied", "foo = 1.0-1", "foo < 1.10", true},
		{"less than unsatisfied", "foo = 1.10-1", "foo < 1.9", false},
		{"open ranges overlap", "foo >= 1.0", "foo <= 3.0", true},
		{"strictly greater at boundary", "foo = 2.0", "foo > 2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, provide(tt.provided).Overlaps(provide(tt.required)))
		})
	}
}
