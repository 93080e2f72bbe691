package text

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// FilterRules returns the rules whose FileFilterGlob matches path. Rules
// without a glob always apply. A glob matches when it matches either the
// slash-separated path or its base name.
func FilterRules(path string, rules []ReplacementRule) ([]ReplacementRule, error) {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)

	out := make([]ReplacementRule, 0, len(rules))
	for _, rule := range rules {
		if rule.FileFilterGlob == "" {
			out = append(out, rule)
			continue
		}

		if !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return nil, errors.Errorf("rule %s: invalid file_filter_glob %q", rule.Name, rule.FileFilterGlob)
		}

		matched, err := doublestar.Match(rule.FileFilterGlob, slashed)
		if err != nil {
			return nil, errors.Errorf("rule %s: matching %q: %w", rule.Name, rule.FileFilterGlob, err)
		}
		if !matched {
			matched, _ = doublestar.Match(rule.FileFilterGlob, base)
		}
		if matched {
			out = append(out, rule)
		}
	}
	return out, nil
}
