// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitespace_FindAll(t *testing.T) {
	tests := []struct {
		name     string
		template string
		content  string
		want     []Span
	}{
		{
			name:     "exact_text",
			template: "out.push(l);",
			content:  "out.push(l);",
			want:     []Span{{Start: 0, End: 12}},
		},
		{
			name:     "reindented_block",
			template: "for l in xs {\n    out.push(l);\n}",
			content:  "  for l in xs {\n\t\tout.push(l);\n  }\n",
			want:     []Span{{Start: 2, End: 34}},
		},
		{
			name:     "joined_onto_one_line",
			template: "let a = b\n    .c()",
			content:  "let a = b .c()",
			want:     []Span{{Start: 0, End: 14}},
		},
		{
			name:     "metacharacters_are_literal",
			template: ".and_then(|s| f(s).ok())",
			content:  "x.and_then(|s| f(s).ok())",
			want:     []Span{{Start: 1, End: 25}},
		},
		{
			name:     "whitespace_is_required_where_template_has_it",
			template: "a b",
			content:  "ab",
			want:     nil,
		},
		{
			name:     "renamed_identifier_does_not_match",
			template: "for l in xs {",
			content:  "for item in xs {",
			want:     nil,
		},
		{
			name:     "multiple_occurrences_left_to_right",
			template: "x = 1",
			content:  "x = 1; x  =  1",
			want:     []Span{{Start: 0, End: 5}, {Start: 7, End: 14}},
		},
		{
			name:     "non_breaking_space_stays_literal",
			template: "a\u00a0b c",
			content:  "a\u00a0b\n\tc",
			want:     []Span{{Start: 0, End: 7}},
		},
		{
			name:     "vertical_tab_stays_literal",
			template: "a\vb c",
			content:  "a\vb  c",
			want:     []Span{{Start: 0, End: 6}},
		},
		{
			name:     "non_breaking_space_is_not_a_wildcard",
			template: "a\u00a0b",
			content:  "a b",
			want:     nil,
		},
		{
			name:     "overlapping_candidates_resolve_leftmost",
			template: "a a",
			content:  "a a a",
			want:     []Span{{Start: 0, End: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewWhitespace(tt.template)
			require.NoError(t, err, "template should compile")
			assert.Equal(t, tt.want, m.FindAll([]byte(tt.content)), "spans should match")
			assert.Equal(t, tt.template, m.String(), "String should return the template")
		})
	}
}

func TestWhitespace_Expr(t *testing.T) {
	m, err := NewWhitespace("  Vec::new(),\n  x  ")
	require.NoError(t, err)
	assert.Equal(t, `Vec::new\(\),\s+x`, m.Expr())
}

func TestRegexp_FindAll(t *testing.T) {
	m, err := NewRegexp(`out\.push\(\w+\);\s+\}`)
	require.NoError(t, err)

	got := m.FindAll([]byte("out.push(a);\n}\nout.push(b); }"))
	assert.Equal(t, []Span{{Start: 0, End: 14}, {Start: 15, End: 29}}, got)
}

func TestLiteral_FindAll(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		content string
		want    []Span
	}{
		{
			name:    "single",
			literal: "foo",
			content: "a foo b",
			want:    []Span{{Start: 2, End: 5}},
		},
		{
			name:    "non_overlapping",
			literal: "aa",
			content: "aaaaa",
			want:    []Span{{Start: 0, End: 2}, {Start: 2, End: 4}},
		},
		{
			name:    "whitespace_is_exact",
			literal: "a b",
			content: "a  b",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewLiteral(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.FindAll([]byte(tt.content)))
		})
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		source    string
		wantType  Matcher
		wantError string
	}{
		{name: "default_kind", kind: "", source: "a b", wantType: &Whitespace{}},
		{name: "whitespace", kind: KindWhitespace, source: "a b", wantType: &Whitespace{}},
		{name: "regexp", kind: KindRegexp, source: `a\s+b`, wantType: &Regexp{}},
		{name: "literal", kind: KindLiteral, source: "a b", wantType: &Literal{}},
		{name: "empty_template", kind: KindWhitespace, source: " \n\t ", wantError: "template is empty"},
		{name: "empty_expression", kind: KindRegexp, source: "", wantError: "expression is empty"},
		{name: "bad_expression", kind: KindRegexp, source: "(", wantError: "compiling expression"},
		{name: "empty_literal", kind: KindLiteral, source: "", wantError: "literal is empty"},
		{name: "unknown_kind", kind: "ast", source: "x", wantError: `unknown pattern kind "ast"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.kind, tt.source)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, m)
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"":           KindWhitespace,
		"whitespace": KindWhitespace,
		" Regexp ":   KindRegexp,
		"LITERAL":    KindLiteral,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, "kind %q", in)
		assert.Equal(t, want, got, "kind %q", in)
	}

	_, err := ParseKind("tree")
	require.Error(t, err)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile(KindRegexp, "(") })
}
