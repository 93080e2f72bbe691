package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/reshape/pkg/config"
	"github.com/walteh/reshape/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const matchPreviewWidth = 48

func newRulesCommand(h *Handler) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the rules that would be applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := h.setupLogging(cmd)
			cfg, err := h.loadConfig(ctx)
			if err != nil {
				return err
			}
			table, err := renderRules(cfg)
			if err != nil {
				return err
			}
			log.FromContext(ctx).Header(describe(cfg))
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

// renderRules builds a table of the configured rules in application order
func renderRules(cfg *config.Config) (string, error) {
	data := pterm.TableData{{"#", "Name", "Kind", "Files", "Match"}}
	for i, r := range cfg.Rules {
		files := r.Files
		if files == "" {
			files = "*"
		}
		data = append(data, []string{
			fmt.Sprint(i + 1),
			r.Name,
			r.Kind,
			files,
			preview(r.Match),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering rules: %w", err)
	}
	return out, nil
}

// preview collapses whitespace runs and shortens long templates
func preview(match string) string {
	s := strings.Join(strings.Fields(match), " ")
	r := []rune(s)
	if len(r) > matchPreviewWidth {
		return string(r[:matchPreviewWidth-1]) + "…"
	}
	return s
}
