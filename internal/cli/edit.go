package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dna-group/puzzled/pkg/config"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive lattice editor",
		Long: `Edit opens the full-screen editor. Click near an edge to toggle it, drag to
pan, use the arrow keys and +/- (or the mouse wheel) to pan and zoom. The
editing state is saved into the session bookmark's URL fragment a moment
after each change; press b to build a shareable bookmark URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}

			sess, err := newSession(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer sess.Close()

			p := tea.NewProgram(newEditorModel(sess),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			// Flush before printing so the URL carries the final state.
			sess.sched.Flush()
			printSuccess("session saved")
			printFile(sess.currentURL())
			return nil
		},
	}
	return cmd
}
