package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/pipeline"
	"github.com/matzehuels/lifeline/pkg/render/sink"
)

// visualizeCommand creates the visualize command for rendering from a scene.
func (c *CLI) visualizeCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "visualize [scene.json]",
		Short: "Render a computed scene",
		Long: `Render a computed scene.

The visualize command takes a scene.json file (produced by 'layout') and
renders it. The scene contains all positioning information, so this step is
purely about drawing.

Use 'render' as a shortcut to go directly from the event list to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := optionsFromConfig(cfg)
			flags.apply(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), cfg, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runVisualize(cmd.Context(), runner, args[0], opts, flags.output)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read scene %s: %w", input, err)
	}
	scene, err := sink.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	opts.Logger = c.Logger
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	base := basePath(output, strings.TrimSuffix(input, ".json"))
	paths, err := writeArtifacts(base, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d events", scene.Len())
	for _, p := range paths {
		printFile(p)
	}
	printStats(scene.Len(), len(scene.Warnings), cacheHit)
	return nil
}
