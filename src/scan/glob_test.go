package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcluded(t *testing.T) {
	tests := []struct {
		patterns []string
		path     string
		want     bool
	}{
		{nil, "tasks/a.wdl", false},
		{[]string{"*_test.wdl"}, "tasks/align_test.wdl", true},
		{[]string{"*_test.wdl"}, "tasks/align.wdl", false},
		{[]string{"deprecated/**"}, "deprecated/old/a.wdl", true},
		{[]string{"deprecated/**"}, "deprecated.wdl", false},
		{[]string{"dep/**"}, "deprecated/a.wdl", false},
		{[]string{"**/scratch/*.wdl"}, "a/b/scratch/c.wdl", true},
		{[]string{"**/scratch/*.wdl"}, "scratch/c.wdl", true},
		{[]string{"tasks/*.wdl"}, "tasks/sub/a.wdl", false},
		{[]string{"x.wdl", "tasks/*.wdl"}, "./tasks/a.wdl", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, excluded(tt.patterns, tt.path), "%v %s", tt.patterns, tt.path)
	}
}
