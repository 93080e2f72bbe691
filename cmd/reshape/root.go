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

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/reshape/pkg/config"
	"github.com/walteh/reshape/pkg/log"
	"github.com/walteh/reshape/pkg/operation"
	"github.com/walteh/reshape/pkg/preset"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Handler holds the flag values for one reshape invocation
type Handler struct {
	configFile string
	preset     string
	target     string
	dryRun     bool
	backup     bool
	strict     bool
	debug      bool
}

// 🏭 NewCommand creates the root reshape command
func NewCommand() *cobra.Command {
	h := &Handler{}

	cmd := &cobra.Command{
		Use:   "reshape [target]",
		Short: "Rewrite source fragments in place using whitespace-tolerant rules",
		Long: `reshape loads a source file, applies an ordered list of find/replace rules
to its content and writes the result back in place.

Templates match regardless of how the whitespace inside them is laid out.
A rule that finds nothing is reported and skipped unless --strict is set.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				h.target = args[0]
			}
			return h.Run(h.setupLogging(cmd))
		},
	}

	cmd.PersistentFlags().StringVarP(&h.configFile, "config", "c", "", "rule file (.yaml, .yml, .json or .hcl); empty uses the built-in preset")
	cmd.PersistentFlags().StringVar(&h.preset, "preset", preset.Default, "built-in rule set used when no rule file is given")
	cmd.PersistentFlags().BoolVarP(&h.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVar(&h.dryRun, "dry-run", false, "print a line diff instead of writing")
	cmd.Flags().BoolVar(&h.backup, "backup", false, "keep the original content next to the target")
	cmd.Flags().BoolVar(&h.strict, "strict", false, "fail when a rule matches nothing")

	cmd.AddCommand(newRulesCommand(h), newVersionCommand())

	return cmd
}

// setupLogging configures zerolog based on flags and attaches a console
// logger writing to the command's output
func (h *Handler) setupLogging(cmd *cobra.Command) context.Context {
	level := zerolog.InfoLevel
	if h.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())
	return log.NewContext(ctx, log.New(cmd.OutOrStdout(), logger))
}

// 📚 loadConfig returns the rule file when one is given and the preset otherwise
func (h *Handler) loadConfig(ctx context.Context) (*config.Config, error) {
	if h.configFile != "" {
		cfg, err := config.Load(ctx, h.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	name := h.preset
	if name == "" {
		name = preset.Default
	}
	cfg, err := preset.Get(name)
	if err != nil {
		return nil, errors.Errorf("loading preset: %w", err)
	}
	return cfg, nil
}

// 🏃 Run applies the configured rules to the target. The console logger
// is taken from ctx.
func (h *Handler) Run(ctx context.Context) error {
	zlog := zerolog.Ctx(ctx)
	ui := log.FromContext(ctx)

	cfg, err := h.loadConfig(ctx)
	if err != nil {
		return err
	}

	if h.target != "" {
		cfg.Target = h.target
	}
	if cfg.Target == "" {
		return errors.New("no target: pass one as an argument or set target in the rule file")
	}
	target, err := filepath.Abs(cfg.Target)
	if err != nil {
		return errors.Errorf("resolving target path: %w", err)
	}

	rules, err := cfg.ReplacementRules()
	if err != nil {
		return errors.Errorf("compiling rules: %w", err)
	}

	op, err := operation.New(operation.Options{
		Target:       target,
		Rules:        rules,
		DryRun:       h.dryRun,
		Backup:       cfg.Backup || h.backup,
		BackupSuffix: cfg.BackupSuffix,
		Strict:       cfg.Strict || h.strict,
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	ui.Header(describe(cfg))
	ui.StartTarget(ctx, log.TargetOperation{Path: target, Rules: len(rules), DryRun: h.dryRun})
	runErr := operation.NewRunner(zlog).Run(ctx, op)
	report(ctx, op.Result())
	ui.EndTarget(ctx)

	if runErr != nil {
		return runErr
	}

	res := op.Result()
	if h.dryRun {
		if !res.Replacement.WasModified {
			ui.Infof("No changes for %s", filepath.Base(target))
			return nil
		}
		ui.LogNewline()
		ui.Diff(res.Diff())
		ui.LogNewline()
		ui.Infof("Dry run, %s was not written", filepath.Base(target))
		return nil
	}

	if res.BackupPath != "" {
		ui.Infof("Original kept at %s", res.BackupPath)
	}
	ui.Successf("Successfully updated loops in %s", filepath.Base(target))
	return nil
}

// describe names where the rules came from
func describe(cfg *config.Config) string {
	if loc := cfg.Location(); loc != "" {
		return fmt.Sprintf("%d rules from %s", len(cfg.Rules), filepath.Base(loc))
	}
	return fmt.Sprintf("%d built-in rules", len(cfg.Rules))
}

// report prints one line per rule in declared order
func report(ctx context.Context, res *operation.Result) {
	if res.Replacement == nil {
		return
	}
	ui := log.FromContext(ctx)

	for _, name := range res.Skipped {
		ui.LogRule(ctx, log.RuleOperation{Name: name, Skipped: true})
	}

	for _, r := range res.Replacement.Rules {
		ui.LogRule(ctx, log.RuleOperation{Name: r.Name, Matches: r.Matches})
	}

	for _, name := range res.Replacement.Unmatched() {
		ui.Warningf("rule %s matched nothing", name)
	}
}
