package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dna-group/puzzled/pkg/buildinfo"
)

// Execute runs the puzzled CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (edit, serve,
// export, share, token), configures logging based on the --verbose flag, and
// executes the command tree. The logger is attached to the context and
// accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "puzzled",
		Short:        "puzzled is a bookmarkable lattice-loop editor",
		Long:         `puzzled is an interactive editor over a fixed lattice of points. Toggle edges between adjacent points, pan and zoom the view, and share the whole editing state as a compact URL token.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("puzzled %s\n", buildinfo.String()))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().String("config", "", "config file (default ~/.config/puzzled/config.toml)")

	root.AddCommand(newEditCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newShareCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// configPath reads the persistent --config flag.
func configPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("config")
	return p
}
