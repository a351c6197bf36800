package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sackd/internal/core/domain"
)

func TestCompareVersion(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"10", "9", 1},
		{"9", "10", -1},
		{"1.10", "1.2", 1},
		{"1.2", "1.10", -1},
		{"5.1", "5.1", 0},
		{"2.0a", "2.0", 1},
		{"1.0.1", "1.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CompareVersion(tt.a, tt.b))
		})
	}
}

func TestCompareEVR(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.EVR
		want int
	}{
		{
			name: "epoch wins over version",
			a:    domain.EVR{Epoch: 1, Version: "1.0", Release: "1"},
			b:    domain.EVR{Epoch: 0, Version: "9.0", Release: "1"},
			want: 1,
		},
		{
			name: "version compared numerically",
			a:    domain.EVR{Version: "1.10", Release: "1"},
			b:    domain.EVR{Version: "1.2", Release: "1"},
			want: 1,
		},
		{
			name: "release breaks ties",
			a:    domain.EVR{Version: "5.1", Release: "2"},
			b:    domain.EVR{Version: "5.1", Release: "10"},
			want: -1,
		},
		{
			name: "missing release matches any release",
			a:    domain.EVR{Version: "5.1"},
			b:    domain.EVR{Version: "5.1", Release: "7"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CompareEVR(tt.a, tt.b))
		})
	}
}

func TestParseEVR(t *testing.T) {
	assert.Equal(t, domain.EVR{Epoch: 2, Version: "1.0", Release: "3.fc40"}, domain.ParseEVR("2:1.0-3.fc40"))
	assert.Equal(t, domain.EVR{Version: "1.0"}, domain.ParseEVR("1.0"))
	assert.Equal(t, domain.EVR{Version: "1.0", Release: "1"}, domain.ParseEVR("x:1.0-1"))
	assert.Equal(t, "0:5.1-1", domain.EVR{Version: "5.1", Release: "1"}.String())
}
