// Package cli implements the sem command tree.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sem-cli/internal/config"
)

// Execute runs the root command and prints any error to stderr.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(version, os.Stdin)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			printError(root.ErrOrStderr(), err)
		}
		return err
	}
	return nil
}

func newRootCommand(version string, stdin io.Reader) *cobra.Command {
	a := newApp(version, stdin)

	rootCmd := &cobra.Command{
		Use:   "sem",
		Short: "Manage organizations, teams, projects and shared configurations",
		Long: `sem manages the organizations, teams, projects and shared configurations
of a CI/CD platform account.

Resources are addressed by path: <org>/<name>, for example rt/cli.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			if err := a.ensure(); err != nil {
				return err
			}
			cmd.SetContext(a.withLogger(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyAPIURL, "", "API base URL")
	flags.StringP(config.KeyOutput, "o", "table", "Output format (table|json)")
	flags.String(config.KeyLogLevel, "warn", "Log level (debug|info|warn|error)")
	flags.String(config.KeyLogFormat, "console", "Log format (console|json)")
	flags.Int(config.KeyOrgConcurrency, 4, "Organizations listed in parallel")

	rootCmd.AddCommand(newLoginCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newStatusCommand(a))
	rootCmd.AddCommand(newVersionCommand(a))
	rootCmd.AddCommand(newOrgsCommand(a))
	rootCmd.AddCommand(newTeamsCommand(a))
	rootCmd.AddCommand(newProjectsCommand(a))
	rootCmd.AddCommand(newSharedConfigsCommand(a))

	return rootCmd
}

const skipConfigLoad = "skipConfigLoad"

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[skipConfigLoad] == "true" {
			return true
		}
	}
	return false
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "✗ %v\n", err)
}
