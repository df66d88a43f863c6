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
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/ngiffix/pkg/normalize"
)

// 📢 UserLogger provides user-friendly feedback, mirrored to zerolog for debugging
type UserLogger struct {
	log     zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 NewUserLogger creates a user logger writing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return New(ctx, os.Stdout)
}

// 🏭 New creates a user logger writing to console
func New(ctx context.Context, console io.Writer) *UserLogger {
	return &UserLogger{
		log:     *zerolog.Ctx(ctx),
		console: console,
	}
}

func (u *UserLogger) printer(p pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return p.WithPrefix(pterm.Prefix{Text: prefix, Style: p.Prefix.Style}).WithWriter(u.console)
}

// ✅ LogFixed reports a rewritten file
func (u *UserLogger) LogFixed(path string, result *normalize.Result) {
	u.mu.Lock()
	defer u.mu.Unlock()

	msg := fmt.Sprintf("Fixed %s", path)
	if !result.WasModified {
		msg = fmt.Sprintf("Fixed %s (already clean)", path)
	}
	u.printer(pterm.Success, "✅").Println(msg)
	u.log.Info().Str("path", path).Int("matches", result.MatchCount()).Bool("modified", result.WasModified).Msg("fixed file")
}

// 📝 LogDiff prints a unified diff, colouring added and removed lines
func (u *UserLogger) LogDiff(diff string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(u.console, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(u.console, color.New(color.FgCyan).Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(u.console, color.New(color.FgGreen).Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(u.console, color.New(color.FgRed).Sprint(line))
		default:
			fmt.Fprint(u.console, line)
		}
	}
}

// 📋 LogRules lists rules in the order they run
func (u *UserLogger) LogRules(rules []normalize.Rule) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i, r := range rules {
		line := fmt.Sprintf("%d. %-28s %s", i+1, r.Name, r.Pattern.String())
		if r.FileGlob != "" {
			line += " " + color.New(color.Faint).Sprintf("[%s]", r.FileGlob)
		}
		fmt.Fprintln(u.console, line)
	}
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "ERROR").Println(err.Error())
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}
