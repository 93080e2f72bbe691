package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRules(t *testing.T) {
	rules := []ReplacementRule{
		{Name: "any"},
		{Name: "rust", FileFilterGlob: "**/*.rs"},
		{Name: "routes", FileFilterGlob: "backend/src/routes/*.rs"},
		{Name: "go_base", FileFilterGlob: "*.go"},
	}

	tests := []struct {
		name string
		path string
		want []string
	}{
		{
			name: "relative_rust_file",
			path: "backend/src/routes/listings.rs",
			want: []string{"any", "rust", "routes"},
		},
		{
			name: "base_name_match",
			path: "cmd/reshape/main.go",
			want: []string{"any", "go_base"},
		},
		{
			name: "nothing_but_unfiltered",
			path: "README.md",
			want: []string{"any"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterRules(tt.path, rules)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterRules_InvalidGlob(t *testing.T) {
	_, err := FilterRules("a.rs", []ReplacementRule{{Name: "bad", FileFilterGlob: "[a-"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file_filter_glob")
}
