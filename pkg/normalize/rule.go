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

package normalize

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Token is the attribute prefix every built-in rule anchors on.
const Token = `*ngIf="`

// 🔄 Rule is a single named substitution
type Rule struct {
	// Name identifies the rule in logs and config
	Name string

	// Pattern is matched against the whole document
	Pattern *regexp.Regexp

	// Replacement is a regexp template ($1 expands to the first group).
	// Ignored when ReplaceFunc is set.
	Replacement string

	// ReplaceFunc receives the submatches of each match and returns its replacement
	ReplaceFunc func(groups []string) string

	// FileGlob restricts the rule to matching paths; empty means every path
	FileGlob string
}

var (
	lineBreakRun = regexp.MustCompile(`\s*\n\s*`)

	collapseMultiline = Rule{
		Name:    "collapse-multiline",
		Pattern: regexp.MustCompile(`\*ngIf="([^"]*\n[^"]*)"`),
		ReplaceFunc: func(groups []string) string {
			value := strings.TrimSpace(groups[1])
			value = lineBreakRun.ReplaceAllString(value, " ")
			return Token + value + `"`
		},
	}

	stripLeadingSpace = Rule{
		Name:        "strip-leading-space",
		Pattern:     regexp.MustCompile(`\*ngIf="\s+`),
		Replacement: Token,
	}

	stripSpaceBeforeClose = Rule{
		Name:        "strip-space-before-close",
		Pattern:     regexp.MustCompile(`\s+"\s*>|"\s+>`),
		Replacement: `">`,
	}
)

// 📋 DefaultRules returns the built-in rules in the order they must run.
// collapse-multiline has to come first; the other two clean up what it leaves.
func DefaultRules() []Rule {
	return []Rule{collapseMultiline, stripLeadingSpace, stripSpaceBeforeClose}
}

// 🎯 Apply runs the rule over content and returns the result with the number of matches
func (r Rule) Apply(content string) (string, int) {
	count := len(r.Pattern.FindAllStringIndex(content, -1))
	if count == 0 {
		return content, 0
	}

	if r.ReplaceFunc == nil {
		return r.Pattern.ReplaceAllString(content, r.Replacement), count
	}

	return r.Pattern.ReplaceAllStringFunc(content, func(match string) string {
		return r.ReplaceFunc(r.Pattern.FindStringSubmatch(match))
	}), count
}

// 🔍 AppliesTo reports whether the rule should run for the file at path
func (r Rule) AppliesTo(path string) bool {
	if r.FileGlob == "" {
		return true
	}
	ok, err := doublestar.PathMatch(r.FileGlob, path)
	return err == nil && ok
}
