package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dna-group/puzzled/pkg/config"
	"github.com/dna-group/puzzled/pkg/export"
)

func newExportCmd() *cobra.Command {
	var (
		output string
		dots   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current lattice as an image",
		Long: `Export renders the current session's edges to a file. The format follows
the output extension: .svg for a direct vector rendering, .dot for graphviz
source with pinned node positions, and .png for a rasterized graphviz pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			tracker := newProgress(logger)

			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}

			graph, _, err := loadStoredState(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if graph.EdgeCount() == 0 {
				printInfo("the lattice is empty; exporting anyway")
			}

			ext := strings.ToLower(filepath.Ext(output))
			switch ext {
			case ".svg":
				var opts []export.SVGOption
				if dots {
					opts = append(opts, export.WithDots())
				}
				if err := os.WriteFile(output, export.RenderSVG(graph, opts...), 0o644); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
			case ".dot":
				if err := os.WriteFile(output, export.DOT(graph), 0o644); err != nil {
					return fmt.Errorf("write dot: %w", err)
				}
			case ".png":
				// Rasterizing through graphviz can take a while on dense loops.
				sp := newSpinnerWithContext(ctx, "rendering png")
				sp.Start()
				err := export.WriteImage(ctx, graph, "png", output)
				sp.Stop()
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported output extension %q (want .svg, .dot, or .png)", ext)
			}

			tracker.done("export complete")
			printSuccess("exported %d edges", graph.EdgeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "lattice.svg", "output file (.svg, .dot, or .png)")
	cmd.Flags().BoolVar(&dots, "dots", false, "include the full dot grid in SVG output")
	return cmd
}
