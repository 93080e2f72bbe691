package text

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is how many unchanged lines are kept around each change
const diffContext = 2

// Diff renders a line oriented diff of two buffers. Removed lines start with
// "- ", added lines with "+ ", kept context lines with "  ". Long unchanged
// stretches collapse into a single "  ..." line. Identical inputs give "".
func Diff(original, modified []byte) string {
	if bytes.Equal(original, modified) {
		return ""
	}

	table := newLineTable()
	a := table.encode(string(original))
	b := table.encode(string(modified))
	diffs := diffmatchpatch.New().DiffMainRunes(a, b, false)

	var sb strings.Builder
	for i, d := range diffs {
		chunk := table.decode(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writePrefixed(&sb, "- ", chunk)
		case diffmatchpatch.DiffInsert:
			writePrefixed(&sb, "+ ", chunk)
		case diffmatchpatch.DiffEqual:
			writePrefixed(&sb, "  ", trimContext(chunk, i == 0, i == len(diffs)-1))
		}
	}
	return sb.String()
}

// lineTable maps every distinct line to a single rune so the diff runs
// line by line. diffmatchpatch's own line mode writes indexes as decimal
// text, which the character diff then splits once there are ten lines.
type lineTable struct {
	lines []string
	index map[string]rune
}

func newLineTable() *lineTable {
	return &lineTable{index: map[string]rune{}}
}

// lineRune skips the surrogate block, which does not survive a string conversion
func lineRune(i int) rune {
	r := rune(i + 1)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

func runeLine(r rune) int {
	if r >= 0xE000 {
		r -= 0x800
	}
	return int(r) - 1
}

func (t *lineTable) encode(s string) []rune {
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	out := make([]rune, 0, len(parts))
	for _, line := range parts {
		r, ok := t.index[line]
		if !ok {
			r = lineRune(len(t.lines))
			t.index[line] = r
			t.lines = append(t.lines, line)
		}
		out = append(out, r)
	}
	return out
}

func (t *lineTable) decode(s string) []string {
	var out []string
	for _, r := range s {
		out = append(out, strings.TrimSuffix(t.lines[runeLine(r)], "\n"))
	}
	return out
}

// trimContext keeps diffContext lines next to each neighbouring change
func trimContext(lines []string, first, last bool) []string {
	head, tail := diffContext, diffContext
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if len(lines) <= head+tail {
		return lines
	}

	out := make([]string, 0, head+tail+1)
	out = append(out, lines[:head]...)
	out = append(out, "...")
	out = append(out, lines[len(lines)-tail:]...)
	return out
}

func writePrefixed(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}
