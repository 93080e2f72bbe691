// Package preset holds the rule sets reshape ships with.
package preset

import (
	"sort"

	"github.com/walteh/reshape/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// Default is the preset used when no rule file is given
const Default = "listings"

var presets = map[string]func() *config.Config{
	"listings": Listings,
}

// Get returns a fresh copy of the named preset
func Get(name string) (*config.Config, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, errors.Errorf("unknown preset %q (have %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the available presets in sorted order
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
