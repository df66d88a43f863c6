package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/ngiffix/cmd/ngiffix/opts"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.UserLogger.LogRules(opts.Rules)
			return nil
		},
	}
}
