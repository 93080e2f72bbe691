// Package operation drives a load, transform, write pass over one target file
package operation

import (
	"bytes"
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/reshape/pkg/text"
	"github.com/walteh/reshape/pkg/textfile"
	"gitlab.com/tozd/go/errors"
)

// ErrUnmatchedRules is returned in strict mode when a rule found nothing
var ErrUnmatchedRules = errors.Base("unmatched rules")

// 🎯 Operation is a unit of work executed by a Runner
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🚦 Stage is how far a transform operation got
type Stage int

const (
	StageStart Stage = iota
	StageLoaded
	StageTransformed
	StageWritten
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageLoaded:
		return "loaded"
	case StageTransformed:
		return "transformed"
	case StageWritten:
		return "written"
	default:
		return "unknown"
	}
}

// 🔧 Options contains configuration for a transform operation
type Options struct {
	// Target is the file that is read and overwritten
	Target string
	// Rules are applied in order to the loaded content
	Rules []text.ReplacementRule
	// Replacer applies the rules; defaults to text.NewPatternTextReplacer
	Replacer text.TextReplacer
	// DryRun stops after the transform step
	DryRun bool
	// Backup keeps the original content next to the target when it changes
	Backup bool
	// BackupSuffix overrides textfile.DefaultBackupSuffix
	BackupSuffix string
	// Strict turns rules that match nothing into an error
	Strict bool
}

// 📊 Result describes what a transform operation did
type Result struct {
	Target      string
	Stage       Stage
	Replacement *text.ReplacementResult
	// Skipped names rules whose file filter excluded the target
	Skipped    []string
	BackupPath string
}

// Diff renders the change between the loaded and the transformed content
func (r *Result) Diff() string {
	if r.Replacement == nil {
		return ""
	}
	return text.Diff(r.Replacement.OriginalContent, r.Replacement.ModifiedContent)
}

// 🏗️ TransformOperation applies an ordered rule list to one file
type TransformOperation struct {
	opts   Options
	result *Result
}

// 🏭 New creates a transform operation with the given options
func New(opts Options) (*TransformOperation, error) {
	if opts.Target == "" {
		return nil, errors.Errorf("target is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewPatternTextReplacer()
	}
	if err := opts.Replacer.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return &TransformOperation{
		opts:   opts,
		result: &Result{Target: opts.Target, Stage: StageStart},
	}, nil
}

func (op *TransformOperation) Name() string {
	return "transform " + op.opts.Target
}

// Result returns the state of the last Execute call
func (op *TransformOperation) Result() *Result {
	return op.result
}

// 🏃 Execute loads the target, applies every rule and writes the result back
func (op *TransformOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("target", op.opts.Target).Logger()
	res := &Result{Target: op.opts.Target, Stage: StageStart}
	op.result = res

	content, err := textfile.Load(ctx, op.opts.Target)
	if err != nil {
		return errors.Errorf("loading target: %w", err)
	}
	res.Stage = StageLoaded

	rules, err := text.FilterRules(op.opts.Target, op.opts.Rules)
	if err != nil {
		return errors.Errorf("filtering rules: %w", err)
	}
	res.Skipped = skippedRules(op.opts.Rules, rules)
	for _, name := range res.Skipped {
		logger.Debug().Str("rule", name).Msg("rule does not apply to target")
	}

	replaced, err := op.opts.Replacer.ReplaceText(ctx, bytes.NewReader(content), rules)
	if err != nil {
		return errors.Errorf("applying rules: %w", err)
	}
	res.Replacement = replaced
	res.Stage = StageTransformed

	logger.Debug().
		Int("replacements", replaced.ReplacementCount).
		Bool("modified", replaced.WasModified).
		Msg("applied rules")

	if unmatched := replaced.Unmatched(); len(unmatched) > 0 {
		for _, name := range unmatched {
			logger.Warn().Str("rule", name).Msg("rule matched nothing")
		}
		if op.opts.Strict {
			return errors.Errorf("%w: %s", ErrUnmatchedRules, strings.Join(unmatched, ", "))
		}
	}

	if op.opts.DryRun {
		logger.Debug().Msg("dry run, not writing")
		return nil
	}

	if op.opts.Backup && replaced.WasModified {
		backupPath, err := textfile.Backup(ctx, op.opts.Target, replaced.OriginalContent, op.opts.BackupSuffix)
		if err != nil {
			return errors.Errorf("backing up target: %w", err)
		}
		res.BackupPath = backupPath
	}

	if err := textfile.Write(ctx, op.opts.Target, replaced.ModifiedContent); err != nil {
		return errors.Errorf("writing target: %w", err)
	}
	res.Stage = StageWritten

	return nil
}

func skippedRules(all, kept []text.ReplacementRule) []string {
	if len(all) == len(kept) {
		return nil
	}
	keep := make(map[string]bool, len(kept))
	for _, r := range kept {
		keep[r.Name] = true
	}
	var skipped []string
	for _, r := range all {
		if !keep[r.Name] {
			skipped = append(skipped, r.Name)
		}
	}
	return skipped
}
