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
	"bytes"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind selects how a pattern source is interpreted
type Kind string

const (
	// KindWhitespace treats every whitespace run in the source as a wildcard
	KindWhitespace Kind = "whitespace"
	// KindRegexp compiles the source as an RE2 expression
	KindRegexp Kind = "regexp"
	// KindLiteral matches the source byte for byte
	KindLiteral Kind = "literal"
)

// flexibleWhitespace is what a whitespace run in a template turns into
const flexibleWhitespace = `\s+`

// whitespaceRun splits templates on the same class the wildcard matches
var whitespaceRun = regexp.MustCompile(flexibleWhitespace)

// 📍 Span is a half-open byte range [Start, End) of a match
type Span struct {
	Start int
	End   int
}

// 🔍 Matcher locates fragments in a buffer
type Matcher interface {
	// FindAll returns leftmost-first, non-overlapping spans in ascending order
	FindAll(content []byte) []Span

	// String returns the source the matcher was built from
	String() string
}

// 🏭 Compile builds a matcher of the given kind. An empty kind means whitespace.
func Compile(kind Kind, source string) (Matcher, error) {
	switch kind {
	case KindWhitespace, "":
		return NewWhitespace(source)
	case KindRegexp:
		return NewRegexp(source)
	case KindLiteral:
		return NewLiteral(source)
	default:
		return nil, errors.Errorf("unknown pattern kind %q", kind)
	}
}

// MustCompile is like Compile but panics on error. Used for built-in rules.
func MustCompile(kind Kind, source string) Matcher {
	m, err := Compile(kind, source)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseKind validates a kind name coming from configuration
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindWhitespace, nil
	case KindWhitespace, KindRegexp, KindLiteral:
		return k, nil
	default:
		return "", errors.Errorf("unknown pattern kind %q", s)
	}
}

// 🌊 Whitespace matches a template whose literal tokens must appear in order,
// separated by any non-empty run of whitespace.
type Whitespace struct {
	template string
	re       *regexp.Regexp
}

// NewWhitespace compiles a whitespace-tolerant template
func NewWhitespace(template string) (*Whitespace, error) {
	var tokens []string
	for _, tok := range whitespaceRun.Split(template, -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, errors.New("template is empty")
	}

	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}

	re, err := regexp.Compile(strings.Join(quoted, flexibleWhitespace))
	if err != nil {
		return nil, errors.Errorf("compiling template: %w", err)
	}

	return &Whitespace{template: template, re: re}, nil
}

func (w *Whitespace) FindAll(content []byte) []Span {
	return spansOf(w.re.FindAllIndex(content, -1))
}

func (w *Whitespace) String() string {
	return w.template
}

// Expr returns the generated expression, mostly useful when debugging a template
func (w *Whitespace) Expr() string {
	return w.re.String()
}

// 🧩 Regexp matches a raw RE2 expression
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp compiles expr
func NewRegexp(expr string) (*Regexp, error) {
	if expr == "" {
		return nil, errors.New("expression is empty")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("compiling expression: %w", err)
	}
	return &Regexp{re: re}, nil
}

func (r *Regexp) FindAll(content []byte) []Span {
	return spansOf(r.re.FindAllIndex(content, -1))
}

func (r *Regexp) String() string {
	return r.re.String()
}

// 📌 Literal matches exact text
type Literal struct {
	text []byte
}

// NewLiteral returns a matcher for text
func NewLiteral(text string) (*Literal, error) {
	if text == "" {
		return nil, errors.New("literal is empty")
	}
	return &Literal{text: []byte(text)}, nil
}

func (l *Literal) FindAll(content []byte) []Span {
	var spans []Span
	offset := 0
	for {
		i := bytes.Index(content[offset:], l.text)
		if i < 0 {
			return spans
		}
		start := offset + i
		spans = append(spans, Span{Start: start, End: start + len(l.text)})
		offset = start + len(l.text)
	}
}

func (l *Literal) String() string {
	return string(l.text)
}

func spansOf(idx [][]int) []Span {
	if len(idx) == 0 {
		return nil
	}
	spans := make([]Span, len(idx))
	for i, m := range idx {
		spans[i] = Span{Start: m[0], End: m[1]}
	}
	return spans
}
