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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/ngiffix/cmd/ngiffix/commands"
	"github.com/walteh/ngiffix/cmd/ngiffix/opts"
	"gitlab.com/tozd/go/errors"
)

const brokenTemplate = "<form>\n  <div *ngIf=\"\n     form.invalid &&\n     form.touched\n  \">error</div>\n</form>\n"

const fixedTemplate = "<form>\n  <div *ngIf=\"form.invalid && form.touched\">error</div>\n</form>\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s", name)
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	var out bytes.Buffer
	cmd := NewCommand(&opts.RootOpts{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		args        func(t *testing.T, path, dir string) []string
		wantErr     bool
		errIs       error
		errContains string
		wantFile    string
		wantOut     []string
	}{
		{
			name:    "fix_rewrites_file",
			content: brokenTemplate,
			args: func(_ *testing.T, path, _ string) []string {
				return []string{"fix", path}
			},
			wantFile: fixedTemplate,
			wantOut:  []string{"Fixed"},
		},
		{
			name:    "fix_clean_file",
			content: fixedTemplate,
			args: func(_ *testing.T, path, _ string) []string {
				return []string{"fix", path}
			},
			wantFile: fixedTemplate,
			wantOut:  []string{"already clean"},
		},
		{
			name:    "fix_dry_run",
			content: brokenTemplate,
			args: func(_ *testing.T, path, _ string) []string {
				return []string{"fix", "--dry-run", path}
			},
			wantFile: brokenTemplate,
			wantOut:  []string{"+  <div *ngIf=\"form.invalid && form.touched\">error</div>"},
		},
		{
			name:    "check_clean",
			content: fixedTemplate,
			args: func(_ *testing.T, path, _ string) []string {
				return []string{"check", path}
			},
			wantFile: fixedTemplate,
			wantOut:  []string{"is clean"},
		},
		{
			name:    "check_dirty",
			content: brokenTemplate,
			args: func(_ *testing.T, path, _ string) []string {
				return []string{"check", path}
			},
			wantErr:  true,
			errIs:    commands.ErrNeedsFix,
			wantFile: brokenTemplate,
			wantOut:  []string{"-  <div *ngIf=\""},
		},
		{
			name:    "fix_with_rules_file",
			content: "<div *ngIf=\"a;\">\n",
			args: func(t *testing.T, path, dir string) []string {
				rules := writeFile(t, dir, "rules.yaml", "rules:\n  - name: drop-semicolon\n    pattern: ';\"'\n    replacement: '\"'\n")
				return []string{"--rules", rules, "fix", path}
			},
			wantFile: "<div *ngIf=\"a\">\n",
		},
		{
			name:    "invalid_rules_file",
			content: brokenTemplate,
			args: func(t *testing.T, path, dir string) []string {
				rules := writeFile(t, dir, "rules.yaml", "rules:\n  - name: bad\n    pattern: '('\n")
				return []string{"-r", rules, "fix", path}
			},
			wantErr:     true,
			errContains: "loading rules",
			wantFile:    brokenTemplate,
		},
		{
			name: "missing_file",
			args: func(_ *testing.T, _, dir string) []string {
				return []string{"fix", filepath.Join(dir, "nope.html")}
			},
			wantErr:     true,
			errContains: "fixing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "form.component.html")
			if tt.content != "" {
				writeFile(t, dir, "form.component.html", tt.content)
			}

			out, err := execute(t, tt.args(t, path, dir)...)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.True(t, errors.Is(err, tt.errIs), "error should wrap %v", tt.errIs)
				}
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
			}

			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}

			if tt.wantFile != "" {
				got, err := os.ReadFile(path)
				require.NoError(t, err, "reading template")
				assert.Equal(t, tt.wantFile, string(got))
			}
		})
	}
}

func TestRulesCommand(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.hcl", `
rule "trailing-and" {
  pattern     = "\\s*&&\""
  replacement = "\""
  file_glob   = "**/*.html"
}
`)

	out, err := execute(t, "rules", "--rules", rules)
	require.NoError(t, err)
	assert.Contains(t, out, "1. collapse-multiline")
	assert.Contains(t, out, "4. trailing-and")
	assert.Contains(t, out, "[**/*.html]")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ngiffix version info")
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand(&opts.RootOpts{})
	require.NotNil(t, cmd, "command should not be nil")
	assert.Equal(t, "ngiffix", cmd.Use, "command name should match")
	assert.NotEmpty(t, cmd.Short, "should have short description")
}
