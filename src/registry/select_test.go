package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLexical(t *testing.T) {
	tests := []struct {
		name   string
		tags   []string
		want   string
		wantOK bool
	}{
		{"digit tags only", []string{"v1", "latest", "v2", "dev"}, "v2", true},
		{"semver tags", []string{"1.1.0", "1.2.0", "latest"}, "1.2.0", true},
		{"lexical not numeric", []string{"9.0", "10.0"}, "9.0", true},
		{"no digits", []string{"latest", "dev", "stable"}, "", false},
		{"empty", nil, "", false},
		{"date tags", []string{"2023-01-05", "2024-11-30", "main"}, "2024-11-30", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectLexical(tt.tags)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectSemver(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"numeric ordering", []string{"9.0", "10.0", "latest"}, "10.0"},
		{"v prefix", []string{"v1.9.2", "v1.10.0"}, "v1.10.0"},
		{"prerelease below release", []string{"2.0.0-rc1", "1.9.0", "2.0.0"}, "2.0.0"},
		{"equal versions pick greater spelling", []string{"1.2", "1.2.0"}, "1.2.0"},
		{"falls back to lexical", []string{"build-7", "build-12"}, "build-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectSemver(tt.tags)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := SelectSemver([]string{"latest"})
	assert.False(t, ok)
}

func TestSelectorFor(t *testing.T) {
	for _, policy := range []string{"", "lexical", "semver"} {
		s, err := SelectorFor(policy)
		require.NoError(t, err, policy)
		assert.NotNil(t, s)
	}

	_, err := SelectorFor("newest")
	assert.Error(t, err)
}
