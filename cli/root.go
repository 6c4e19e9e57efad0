package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command; the process exits 1 on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := serveCmd()

	cmd := &cobra.Command{
		Use:          "padroniza",
		Short:        "Name and e-mail standardization service",
		SilenceUsage: true,
		// no subcommand: behave like "serve"
		RunE: serve.RunE,
	}

	cmd.AddCommand(serve, normalizeCmd())
	return cmd
}
