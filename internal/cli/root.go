// Package cli implements the jjdiverge command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jjdiverge.dev/jjdiverge/internal/cli/helpers"
	"jjdiverge.dev/jjdiverge/internal/config"
	"jjdiverge.dev/jjdiverge/internal/resolver"
	"jjdiverge.dev/jjdiverge/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		safe       bool
		auto       bool
		repository string
	)

	rootCmd := &cobra.Command{
		Use:   "jjdiverge",
		Short: "Interactively resolve divergent changes in a jj repository",
		Long: `Interactively resolve divergent changes in a jj repository.

A change is divergent when two or more visible commits carry its change ID.
jjdiverge finds them, compares the two revisions of one change and lets you
abandon or squash one side. Descendants of the side that goes away are rebased
onto the side that stays. After every change to the repository, detection
starts over.

Menu actions:
  AL/AR  abandon the left/right commit
  SL/SR  squash the left commit into the right one, or the reverse
  P      print the stack
  R      refresh (restart from the beginning)
  I      show the interdiff
  DL/DR  show the diff of the left/right commit`,
		Example: `  jjdiverge
  jjdiverge --safe
  jjdiverge --auto
  jjdiverge --safe --auto`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := config.Mode{Safe: safe, Auto: auto}
			err := helpers.Run(cmd, repository, func(ctx *runtime.Context) error {
				return resolve(cmd, ctx, mode)
			})
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "❌ Error: %v\n", err)
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&safe, "safe", false, "Ask for confirmation before each jj command")
	rootCmd.Flags().BoolVar(&auto, "auto", false, "Use git tool for interdiff and auto-squash if empty")
	rootCmd.Flags().StringVarP(&repository, "repository", "R", "", "Path to the jj workspace (defaults to the current directory)")

	return rootCmd
}

func resolve(cmd *cobra.Command, ctx *runtime.Context, mode config.Mode) error {
	if mode.Safe {
		ctx.Splog.Info("🔒 Safe mode enabled - will ask for confirmation before each jj command")
	}
	if mode.Auto {
		ctx.Splog.Info("🤖 Auto mode enabled - will use git tool for interdiff and auto-squash if empty")
	}

	r := resolver.New(resolver.Options{
		Repo:     ctx.Repo,
		Prompter: ctx.Prompter,
		Splog:    ctx.Splog,
		Mode:     mode,
		Color:    ctx.Color,
	})
	return r.Run(cmd.Context())
}
