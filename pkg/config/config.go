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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/reshape/pkg/pattern"
	"github.com/walteh/reshape/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is a single fragment replacement as written in a config file
type Rule struct {
	Name    string `json:"name" yaml:"name" hcl:"name,label"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty" hcl:"kind,optional"`
	Match   string `json:"match" yaml:"match" hcl:"match"`
	Replace string `json:"replace" yaml:"replace" hcl:"replace,optional"`
	Files   string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Target       string `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional"`
	Backup       bool   `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`
	BackupSuffix string `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty" hcl:"backup_suffix,optional"`
	Strict       bool   `json:"strict,omitempty" yaml:"strict,omitempty" hcl:"strict,optional"`
	Rules        []Rule `json:"rules" yaml:"rules" hcl:"rule,block"`

	location string
}

// 🎯 Load loads the configuration from a file. A relative target is resolved
// against the directory holding the config file.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if cfg.Target != "" && !filepath.IsAbs(cfg.Target) {
		cfg.Target = filepath.Join(filepath.Dir(path), cfg.Target)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("path", path).Int("rules", len(cfg.Rules)).Msg("loaded configuration")
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.New("at least one rule is required")
	}

	seen := make(map[string]bool, len(cfg.Rules))
	for i := range cfg.Rules {
		r := &cfg.Rules[i]
		if r.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if seen[r.Name] {
			return errors.Errorf("rule %d: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true

		if r.Match == "" {
			return errors.Errorf("rule %s: match is required", r.Name)
		}

		kind, err := pattern.ParseKind(r.Kind)
		if err != nil {
			return errors.Errorf("rule %s: %w", r.Name, err)
		}
		r.Kind = string(kind)

		if r.Files != "" && !doublestar.ValidatePattern(r.Files) {
			return errors.Errorf("rule %s: invalid files glob %q", r.Name, r.Files)
		}
	}

	if cfg.Target != "" {
		cfg.Target = filepath.Clean(cfg.Target)
	}

	return nil
}

// 🏗️ ReplacementRules compiles the configured rules in declared order
func (cfg *Config) ReplacementRules() ([]text.ReplacementRule, error) {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		m, err := pattern.Compile(pattern.Kind(r.Kind), r.Match)
		if err != nil {
			return nil, errors.Errorf("rule %s: %w", r.Name, err)
		}
		rules = append(rules, text.ReplacementRule{
			Name:           r.Name,
			Pattern:        m,
			Replacement:    r.Replace,
			FileFilterGlob: r.Files,
		})
	}
	return rules, nil
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	target := cfg.Target
	if target == "" {
		target = "<unset>"
	}
	return fmt.Sprintf("%d rules -> %s", len(cfg.Rules), target)
}
