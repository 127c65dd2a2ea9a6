package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by render and visualize.
type renderFlags struct {
	output   string // base path for output files
	formats  string // comma-separated formats; empty uses the config
	title    string
	subtitle string
	scale    float64
	detailed bool // slot and coordinates in DOT labels
	noCache  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, dot, graphviz (comma-separated)")
	cmd.Flags().StringVar(&f.title, "title", "", "heading drawn above the timeline (svg)")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "subheading drawn below the title (svg)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per layout unit (svg, default 80)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "include slots and coordinates in DOT labels")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply overlays explicitly set flags on opts.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if formats := parseFormats(f.formats); formats != nil {
		opts.Formats = formats
	}
	if cmd.Flags().Changed("title") {
		opts.Title = f.title
	}
	if cmd.Flags().Changed("subtitle") {
		opts.Subtitle = f.subtitle
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = f.scale
	}
	opts.Detailed = f.detailed
}

// renderCommand creates the render command: events text to output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      renderFlags
		allowEmpty bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [events.txt]",
		Short: "Lay out an event list and render it",
		Long: `Lay out an event list and render it.

The input holds one event per line: a DD/MM/YYYY date, one separator
character and a description. Lines with a malformed date are skipped with a
warning. Use "-" to read from standard input.

One file is written per format, named <base>.<ext>. Results are cached
locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := optionsFromConfig(cfg)
			flags.apply(cmd, &opts)
			opts.AllowEmpty = allowEmpty
			opts.Refresh = refresh
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), cfg, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runRender(cmd.Context(), runner, args[0], opts, flags.output)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "render an empty timeline instead of failing when no line parses")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options, output string) error {
	text, err := pipeline.ReadInputFile(input)
	if err != nil {
		return err
	}

	opts.Logger = c.Logger
	spinner := newSpinnerWithContext(ctx, "Rendering timeline...")
	spinner.Start()

	result, err := runner.Execute(ctx, text, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input)
	if input == "-" && output == "" {
		base = "timeline"
	}
	paths, err := writeArtifacts(base, result.Artifacts)
	if err != nil {
		return err
	}

	printSkipped(result.Stats.SkippedLines)
	printSuccess("Rendered %d events", result.Stats.EventCount)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.EventCount, result.Stats.SkippedLines, result.CacheInfo.SceneHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order.
func writeArtifacts(base string, artifacts map[string][]byte) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + pipeline.Extension(f)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
