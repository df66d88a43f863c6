package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ngiffix/cmd/ngiffix/opts"
	"github.com/walteh/ngiffix/pkg/normalize"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates a new fix command
func NewFixCmd(opts *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Collapse multi-line *ngIf attributes in a template",
		Long: `Fix rewrites a template in place so every *ngIf value sits on one line.
It will:
1. Read the whole file
2. Apply each rule in order
3. Write the result back to the same path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := targetPath(args)
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "fix").Logger().WithContext(cmd.Context())

			result, err := normalize.NormalizeFile(ctx, path, normalize.Options{
				Rules:  opts.Rules,
				DryRun: dryRun,
			})
			if err != nil {
				return errors.Errorf("fixing %s: %w", path, err)
			}

			if dryRun {
				diff, err := result.Diff(path)
				if err != nil {
					return err
				}
				if diff == "" {
					opts.UserLogger.LogValidation(true, path+" is already clean", nil)
					return nil
				}
				opts.UserLogger.LogDiff(diff)
				return nil
			}

			opts.UserLogger.LogFixed(path, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the diff instead of writing")

	return cmd
}
