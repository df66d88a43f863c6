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

// Package normalize rewrites *ngIf attributes that were split across lines.
//
// The rewrite is plain text substitution. It does not parse markup, and it
// assumes no *ngIf value contains a literal double quote.
package normalize

import (
	"context"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 RuleCount is the number of matches one rule made
type RuleCount struct {
	Rule    string
	Matches int
}

// 📦 Result contains the outcome of a normalization
type Result struct {
	// OriginalContent is the text before any rule ran
	OriginalContent string

	// ModifiedContent is the text after every rule ran
	ModifiedContent string

	// Counts holds one entry per rule that ran, in order
	Counts []RuleCount

	// WasModified indicates if the output differs from the input
	WasModified bool
}

// MatchCount returns the total number of matches across all rules
func (r *Result) MatchCount() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Matches
	}
	return total
}

// 📝 Diff returns a unified diff between the original and modified content.
// It is empty when nothing changed.
func (r *Result) Diff(path string) (string, error) {
	if !r.WasModified {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.OriginalContent),
		B:        difflib.SplitLines(r.ModifiedContent),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
	if err != nil {
		return "", errors.Errorf("building diff: %w", err)
	}
	return diff, nil
}

// 🎯 Normalize applies rules to content in order, each to the output of the previous one
func Normalize(ctx context.Context, content string, rules []Rule) *Result {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		OriginalContent: content,
		Counts:          make([]RuleCount, 0, len(rules)),
	}

	current := content
	for _, rule := range rules {
		var n int
		current, n = rule.Apply(current)
		result.Counts = append(result.Counts, RuleCount{Rule: rule.Name, Matches: n})
		logger.Debug().Str("rule", rule.Name).Int("matches", n).Msg("applied rule")
	}

	result.ModifiedContent = current
	result.WasModified = current != content
	return result
}

// 🔧 Options controls NormalizeFile
type Options struct {
	// Rules to apply; nil means DefaultRules
	Rules []Rule

	// DryRun skips the write
	DryRun bool
}

// 📁 NormalizeFile reads path, normalizes it, and writes the result back to path.
// The file is rewritten even when no rule matched. Nothing is written if the
// read fails.
func NormalizeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	active := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if !rule.AppliesTo(path) {
			logger.Debug().Str("rule", rule.Name).Str("glob", rule.FileGlob).Msg("skipping rule")
			continue
		}
		active = append(active, rule)
	}

	result := Normalize(logger.WithContext(ctx), string(data), active)

	if opts.DryRun {
		logger.Debug().Bool("modified", result.WasModified).Msg("dry run, not writing")
		return result, nil
	}

	if err := os.WriteFile(path, []byte(result.ModifiedContent), info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}

	logger.Debug().
		Bool("modified", result.WasModified).
		Int("matches", result.MatchCount()).
		Msg("wrote file")

	return result, nil
}
