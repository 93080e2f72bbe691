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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	ruleIndent  = 4  // spaces to indent rule entries
	nameWidth   = 35 // Base width for rule name
	statusWidth = 15 // Width for status text
)

// 🎯 RuleOperation represents the outcome of one rule for logging
type RuleOperation struct {
	Name    string // Rule name
	Matches int    // Number of fragments replaced
	Skipped bool   // Whether the rule's file filter excluded the target
}

// 📦 TargetOperation represents a pass over one target file
type TargetOperation struct {
	Path   string // Target path
	Rules  int    // Number of configured rules
	DryRun bool   // Whether the pass writes
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *TargetOperation
	rules     []RuleOperation
}

// 🏭 New creates a new logger writing user-facing lines to console and
// structured events to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatRuleOperation formats a rule outcome for display
func (l *Logger) formatRuleOperation(op RuleOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.Skipped:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "SKIPPED"
	case op.Matches > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = fmt.Sprintf("REPLACED [%d]", op.Matches)
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		status = "NO MATCH"
	}

	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", ruleIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Name),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, status)))
}

// 📝 StartTarget starts reporting a pass over a target
func (l *Logger) StartTarget(ctx context.Context, op TargetOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.rules = nil

	mode := "apply"
	if op.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Path),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("target", op.Path).
		Int("rules", op.Rules).
		Bool("dry_run", op.DryRun).
		Msg("starting target")
}

// 📝 LogRule logs a rule outcome
func (l *Logger) LogRule(ctx context.Context, op RuleOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rules = append(l.rules, op)

	fmt.Fprintln(l.console, l.formatRuleOperation(op))

	l.zlog.Info().
		Str("rule", op.Name).
		Int("matches", op.Matches).
		Bool("skipped", op.Skipped).
		Msg("rule")
}

// 📝 EndTarget ends the current target and logs a summary
func (l *Logger) EndTarget(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	total := 0
	for _, r := range l.rules {
		total += r.Matches
	}

	l.zlog.Info().
		Str("target", l.currentOp.Path).
		Int("rules", len(l.rules)).
		Int("replacements", total).
		Msg("target complete")

	l.currentOp = nil
	l.rules = nil
}

// 📝 Diff prints a line diff with added lines in green and removed lines in red
func (l *Logger) Diff(diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(l.console, color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(l.console, color.RedString("%s", line))
		default:
			fmt.Fprintln(l.console, color.New(color.Faint).Sprint(line))
		}
	}
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("reshape")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
