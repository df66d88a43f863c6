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

// Package config loads extra substitution rules from YAML, JSON, or HCL files.
package config

import (
	"context"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/ngiffix/pkg/normalize"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

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

// 🔄 Rule is a user supplied substitution
type Rule struct {
	Name        string `json:"name" yaml:"name"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
	FileGlob    string `json:"file_glob,omitempty" yaml:"file_glob,omitempty"`
}

// 📚 Config represents a rules file
type Config struct {
	// SkipDefaults drops the built-in rules so only these run
	SkipDefaults bool   `json:"skip_defaults,omitempty" yaml:"skip_defaults,omitempty"`
	Rules        []Rule `json:"rules" yaml:"rules"`

	location string
}

// Location returns the path the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks that every rule can be compiled
func Validate(ctx context.Context, cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Rules))
	if !cfg.SkipDefaults {
		for _, builtin := range normalize.DefaultRules() {
			seen[builtin.Name] = true
		}
	}

	for i, r := range cfg.Rules {
		if r.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if seen[r.Name] {
			return errors.Errorf("rule %d: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true

		if r.Pattern == "" {
			return errors.Errorf("rule %q: pattern is required", r.Name)
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return errors.Errorf("rule %q: compiling pattern: %w", r.Name, err)
		}
		if r.FileGlob != "" && !doublestar.ValidatePattern(r.FileGlob) {
			return errors.Errorf("rule %q: invalid file_glob %q", r.Name, r.FileGlob)
		}
	}

	zerolog.Ctx(ctx).Debug().Int("rules", len(cfg.Rules)).Bool("skip_defaults", cfg.SkipDefaults).Msg("validated config")
	return nil
}

// 🏭 NormalizeRules returns the full ordered rule list: built-ins first, then the file's rules.
// A nil config yields the built-ins.
func (cfg *Config) NormalizeRules() ([]normalize.Rule, error) {
	if cfg == nil {
		return normalize.DefaultRules(), nil
	}

	var rules []normalize.Rule
	if !cfg.SkipDefaults {
		rules = append(rules, normalize.DefaultRules()...)
	}

	for _, r := range cfg.Rules {
		pattern, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, errors.Errorf("rule %q: compiling pattern: %w", r.Name, err)
		}
		rules = append(rules, normalize.Rule{
			Name:        r.Name,
			Pattern:     pattern,
			Replacement: r.Replacement,
			FileGlob:    r.FileGlob,
		})
	}

	if rules == nil {
		rules = []normalize.Rule{}
	}
	return rules, nil
}
