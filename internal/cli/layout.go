package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/pipeline"
	"github.com/matzehuels/lifeline/pkg/render/sink"
)

// layoutCommand creates the layout command for computing a scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		allowEmpty bool
		wrapWidth  int
		rowSize    int
	)

	cmd := &cobra.Command{
		Use:   "layout [events.txt]",
		Short: "Compute the timeline scene from an event list",
		Long: `Compute the timeline scene from an event list.

The layout command parses the events and computes every position, box,
badge and connector. The output is a scene.json file (same format as
'render -f json') that can be rendered with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := optionsFromConfig(cfg)
			opts.AllowEmpty = allowEmpty
			if cmd.Flags().Changed("wrap-width") {
				opts.Layout.WrapWidth = wrapWidth
			}
			if cmd.Flags().Changed("row-size") {
				opts.Layout.RowSize = rowSize
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			return c.runLayout(cmd.Context(), runner, args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "write an empty scene instead of failing when no line parses")
	cmd.Flags().IntVar(&wrapWidth, "wrap-width", 0, "max characters per description line (default 20)")
	cmd.Flags().IntVar(&rowSize, "row-size", 0, "events per row (default 4)")

	return cmd
}

// runLayout reads the events, computes the scene, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options, output string) error {
	text, err := pipeline.ReadInputFile(input)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	opts.Logger = c.Logger
	scene, cacheHit, err := runner.LayoutWithCacheInfo(ctx, text, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("Computed layout")

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if input == "-" {
			base = "timeline"
		}
		outputPath = base + ".scene.json"
	}

	data, err := sink.RenderJSON(scene)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSkipped(len(scene.Warnings))
	printSuccess("Layout complete")
	printFile(outputPath)
	printKeyValue("rows", fmt.Sprint(scene.Rows()))
	printKeyValue("bounds", fmt.Sprintf("[%g, %g] x [%g, %g]", scene.Bounds.MinX, scene.Bounds.MaxX, scene.Bounds.MinY, scene.Bounds.MaxY))
	printStats(scene.Len(), len(scene.Warnings), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
