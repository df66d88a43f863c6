package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ngiffix/cmd/ngiffix/commands"
	"github.com/walteh/ngiffix/cmd/ngiffix/opts"
	"github.com/walteh/ngiffix/pkg/config"
	"github.com/walteh/ngiffix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewCommand creates the root command and its subcommands
func NewCommand(rootOpts *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ngiffix",
		Short: "Collapse *ngIf attributes that were split across lines",
		Long: `ngiffix rewrites a single Angular template so that every *ngIf value
sits on one line, with no whitespace just inside the quotes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), rootOpts.Debug)
			cmd.SetContext(ctx)
			return loadRootOpts(ctx, rootOpts, cmd)
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewFixCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// loadRootOpts fills in the logger and the active rules
func loadRootOpts(ctx context.Context, rootOpts *opts.RootOpts, cmd *cobra.Command) error {
	rootOpts.UserLogger = log.New(ctx, cmd.OutOrStdout())

	var cfg *config.Config
	if rootOpts.RulesFile != "" {
		var err error
		cfg, err = config.LoadConfig(ctx, rootOpts.RulesFile)
		if err != nil {
			return errors.Errorf("loading rules: %w", err)
		}
	}

	rules, err := cfg.NormalizeRules()
	if err != nil {
		return errors.Errorf("building rules: %w", err)
	}
	rootOpts.Rules = rules

	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&rootOpts.RulesFile, "rules", "r", "", "extra rules file (.yaml, .json, .hcl)")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
