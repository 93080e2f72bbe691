package preset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/reshape/pkg/text"
)

func listingsRules(t *testing.T) []text.ReplacementRule {
	t.Helper()
	cfg := Listings()
	require.NoError(t, cfg.Validate(), "preset should validate")
	rules, err := cfg.ReplacementRules()
	require.NoError(t, err, "preset should compile")
	return rules
}

func TestListings_Golden(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "listings.rs"))
	require.NoError(t, err)
	golden, err := os.ReadFile(filepath.Join("testdata", "listings.golden.rs"))
	require.NoError(t, err)

	result, err := text.NewPatternTextReplacer().ReplaceText(context.Background(), bytes.NewReader(input), listingsRules(t))
	require.NoError(t, err)

	assert.Equal(t, string(golden), string(result.ModifiedContent))
	assert.Equal(t, []text.RuleResult{
		{Name: "host_listings", Matches: 1},
		{Name: "my_listings", Matches: 1},
	}, result.Rules)
	assert.Contains(t, string(result.ModifiedContent), "for listing in listings {", "differently shaped loops stay untouched")
}

func TestListings_SecondRunIsNoop(t *testing.T) {
	golden, err := os.ReadFile(filepath.Join("testdata", "listings.golden.rs"))
	require.NoError(t, err)

	result, err := text.NewPatternTextReplacer().ReplaceText(context.Background(), bytes.NewReader(golden), listingsRules(t))
	require.NoError(t, err)

	assert.False(t, result.WasModified)
	assert.Equal(t, []string{"host_listings", "my_listings"}, result.Unmatched())
}

func TestListings_RulesApplyToTarget(t *testing.T) {
	rules, err := text.FilterRules(ListingsTarget, listingsRules(t))
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestGet(t *testing.T) {
	cfg, err := Get(Default)
	require.NoError(t, err)
	assert.Equal(t, ListingsTarget, cfg.Target)

	// each call hands out its own copy
	cfg.Rules[0].Name = "changed"
	again, err := Get(Default)
	require.NoError(t, err)
	assert.Equal(t, "host_listings", again.Rules[0].Name)

	_, err = Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "nope"`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"listings"}, Names())
}
