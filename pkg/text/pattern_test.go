package text

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/reshape/pkg/pattern"
)

func ws(t *testing.T, template string) pattern.Matcher {
	t.Helper()
	m, err := pattern.NewWhitespace(template)
	require.NoError(t, err, "template should compile")
	return m
}

func TestFindAndReplace(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		template  string
		replace   string
		want      string
		wantCount int
	}{
		{
			name:      "single_span_rest_untouched",
			content:   "head\n  for x in xs {\n    use(x);\n  }\ntail\n",
			template:  "for x in xs { use(x); }",
			replace:   "xs.each(use);",
			want:      "head\n  xs.each(use);\ntail\n",
			wantCount: 1,
		},
		{
			name:      "every_occurrence",
			content:   "a = 1\nb\na  =  1\n",
			template:  "a = 1",
			replace:   "a = 2",
			want:      "a = 2\nb\na = 2\n",
			wantCount: 2,
		},
		{
			name:      "no_match_is_noop",
			content:   "nothing to see",
			template:  "absent token",
			replace:   "x",
			want:      "nothing to see",
			wantCount: 0,
		},
		{
			name:      "replacement_is_literal",
			content:   "value",
			template:  "value",
			replace:   "$1 ${name} \\n",
			want:      "$1 ${name} \\n",
			wantCount: 1,
		},
		{
			name:      "empty_replacement_deletes",
			content:   "keep drop keep",
			template:  "drop",
			replace:   "",
			want:      "keep  keep",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := ReplacementRule{Name: tt.name, Pattern: ws(t, tt.template), Replacement: tt.replace}
			got, n := FindAndReplace([]byte(tt.content), rule)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestFindAndReplace_NilPattern(t *testing.T) {
	got, n := FindAndReplace([]byte("abc"), ReplacementRule{Name: "empty"})
	assert.Equal(t, "abc", string(got))
	assert.Zero(t, n)
}

func TestPatternTextReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		rules         func(t *testing.T) []ReplacementRule
		want          string
		wantCount     int
		wantModified  bool
		wantUnmatched []string
	}{
		{
			name:    "rule_a_matches_rule_b_does_not",
			content: "fn f() {\n    let out = build(\n        a,\n    );\n}\n",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{
					{Name: "a", Pattern: ws(t, "let out = build( a, );"), Replacement: "let out = narrow(a);"},
					{Name: "b", Pattern: ws(t, "let other = 1;"), Replacement: "let other = 2;"},
				}
			},
			want:          "fn f() {\n    let out = narrow(a);\n}\n",
			wantCount:     1,
			wantModified:  true,
			wantUnmatched: []string{"b"},
		},
		{
			name:    "no_rule_matches",
			content: "fn f() {}\n",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{
					{Name: "a", Pattern: ws(t, "let a = 1;"), Replacement: "x"},
					{Name: "b", Pattern: ws(t, "let b = 1;"), Replacement: "y"},
				}
			},
			want:          "fn f() {}\n",
			wantCount:     0,
			wantModified:  false,
			wantUnmatched: []string{"a", "b"},
		},
		{
			name:    "later_rule_sees_earlier_output",
			content: "old old",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{
					{Name: "first", Pattern: ws(t, "old old"), Replacement: "new"},
					{Name: "second", Pattern: ws(t, "old"), Replacement: "stale"},
				}
			},
			want:          "new",
			wantCount:     1,
			wantModified:  true,
			wantUnmatched: []string{"second"},
		},
		{
			name:    "chained_rules",
			content: "alpha",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{
					{Name: "first", Pattern: ws(t, "alpha"), Replacement: "beta"},
					{Name: "second", Pattern: ws(t, "beta"), Replacement: "gamma"},
				}
			},
			want:         "gamma",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "empty_rules",
			content: "unchanged",
			rules: func(t *testing.T) []ReplacementRule {
				return nil
			},
			want: "unchanged",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewPatternTextReplacer()
			result, err := replacer.ReplaceText(ctx, strings.NewReader(tt.content), tt.rules(t))
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
			assert.Equal(t, tt.wantUnmatched, result.Unmatched())
		})
	}
}

func TestPatternTextReplacer_SecondPassIsNoop(t *testing.T) {
	rules := []ReplacementRule{
		{Name: "loop", Pattern: ws(t, "for l in xs { out.push(Wide { l }); }"), Replacement: "for l in xs { out.push(Narrow { l }); }"},
	}
	input := "fn f() {\n    for l in xs {\n        out.push(Wide { l });\n    }\n}\n"

	replacer := NewPatternTextReplacer()
	ctx := context.Background()

	first, err := replacer.ReplaceText(ctx, strings.NewReader(input), rules)
	require.NoError(t, err)
	require.True(t, first.WasModified)

	second, err := replacer.ReplaceText(ctx, strings.NewReader(string(first.ModifiedContent)), rules)
	require.NoError(t, err)
	assert.False(t, second.WasModified, "second pass should change nothing")
	assert.Zero(t, second.ReplacementCount)
	assert.Equal(t, string(first.ModifiedContent), string(second.ModifiedContent))
}

func TestPatternTextReplacer_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     func(t *testing.T) []ReplacementRule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{{Name: "a", Pattern: ws(t, "x")}, {Name: "b", Pattern: ws(t, "y")}}
			},
		},
		{
			name: "missing_name",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{{Pattern: ws(t, "x")}}
			},
			wantError: "rule 0: name is required",
		},
		{
			name: "missing_pattern",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{{Name: "a"}}
			},
			wantError: "pattern is required",
		},
		{
			name: "duplicate_name",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{{Name: "a", Pattern: ws(t, "x")}, {Name: "a", Pattern: ws(t, "y")}}
			},
			wantError: `rule 1: duplicate name "a"`,
		},
		{
			name: "empty_rules",
			rules: func(t *testing.T) []ReplacementRule {
				return []ReplacementRule{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPatternTextReplacer().ValidateRules(tt.rules(t))
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
