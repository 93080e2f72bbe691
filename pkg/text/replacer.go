package text

import (
	"context"
	"io"

	"github.com/walteh/reshape/pkg/pattern"
)

// ReplacementRule defines a single fragment replacement
type ReplacementRule struct {
	// Name identifies the rule in logs and reports
	Name string

	// Pattern locates the fragments to replace
	Pattern pattern.Matcher

	// Replacement is the literal text that replaces each match
	Replacement string

	// FileFilterGlob optionally restricts the rule to matching target paths
	FileFilterGlob string
}

// RuleResult records what a single rule did
type RuleResult struct {
	// Name is the rule name
	Name string

	// Matches is the number of fragments the rule replaced
	Matches int
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte

	// Rules holds one entry per applied rule, in application order
	Rules []RuleResult
}

// Unmatched returns the names of rules that found nothing to replace
func (r *ReplacementResult) Unmatched() []string {
	var names []string
	for _, rr := range r.Rules {
		if rr.Matches == 0 {
			names = append(names, rr.Name)
		}
	}
	return names
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a set of replacement rules to the content
	// Returns a ReplacementResult containing the modified content and metadata
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
