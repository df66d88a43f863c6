package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/ngiffix/cmd/ngiffix/opts"
	"github.com/walteh/ngiffix/pkg/normalize"
	"gitlab.com/tozd/go/errors"
)

// ErrNeedsFix is returned by check when the file would change
var ErrNeedsFix = errors.Base("file needs fixing")

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report whether a template needs fixing",
		Long: `Check runs every rule in memory and fails with a diff if the file would change.
Nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := targetPath(args)

			result, err := normalize.NormalizeFile(cmd.Context(), path, normalize.Options{
				Rules:  opts.Rules,
				DryRun: true,
			})
			if err != nil {
				return errors.Errorf("checking %s: %w", path, err)
			}

			if !result.WasModified {
				opts.UserLogger.LogValidation(true, path+" is clean", nil)
				return nil
			}

			diff, err := result.Diff(path)
			if err != nil {
				return err
			}
			opts.UserLogger.LogDiff(diff)

			return errors.WithDetails(ErrNeedsFix, "path", path, "matches", result.MatchCount())
		},
	}

	return cmd
}
