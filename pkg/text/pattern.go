package text

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// PatternTextReplacer implements TextReplacer using pattern matchers
type PatternTextReplacer struct{}

// NewPatternTextReplacer creates a new PatternTextReplacer
func NewPatternTextReplacer() *PatternTextReplacer {
	return &PatternTextReplacer{}
}

// FindAndReplace replaces every fragment the rule's pattern finds with the
// rule's replacement text and returns the new content with the match count.
// When nothing matches the input slice is returned as is.
func FindAndReplace(content []byte, rule ReplacementRule) ([]byte, int) {
	if rule.Pattern == nil {
		return content, 0
	}

	spans := rule.Pattern.FindAll(content)
	if len(spans) == 0 {
		return content, 0
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + len(spans)*len(rule.Replacement))

	last := 0
	for _, s := range spans {
		buf.Write(content[last:s.Start])
		buf.WriteString(rule.Replacement)
		last = s.End
	}
	buf.Write(content[last:])

	return buf.Bytes(), len(spans)
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *PatternTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		Rules:           make([]RuleResult, 0, len(rules)),
	}

	// each rule sees the output of the previous one
	current := originalContent
	for _, rule := range rules {
		next, n := FindAndReplace(current, rule)

		logger.Debug().
			Str("rule", rule.Name).
			Int("matches", n).
			Msg("applied rule")

		result.Rules = append(result.Rules, RuleResult{Name: rule.Name, Matches: n})
		result.ReplacementCount += n
		current = next
	}

	result.ModifiedContent = current
	result.WasModified = !bytes.Equal(originalContent, current)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *PatternTextReplacer) ValidateRules(rules []ReplacementRule) error {
	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if rule.Pattern == nil {
			return errors.Errorf("rule %d (%s): pattern is required", i, rule.Name)
		}
		if seen[rule.Name] {
			return errors.Errorf("rule %d: duplicate name %q", i, rule.Name)
		}
		seen[rule.Name] = true
	}
	return nil
}
