package helpers

import (
	"github.com/spf13/cobra"

	"jjdiverge.dev/jjdiverge/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, repoRoot string, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(runtime.Options{
		RepoRoot: repoRoot,
		Stdin:    cmd.InOrStdin(),
		Stdout:   cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()
	return fn(ctx)
}
