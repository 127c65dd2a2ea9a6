// Package cli implements the lifeline command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/buildinfo"
	"github.com/matzehuels/lifeline/pkg/cache"
	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lifeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Lifeline lays out dated events as a zigzag timeline",
		Long:         `Lifeline reads one "DD/MM/YYYY description" line per event and lays the events out as a zigzag timeline of numbered, connected boxes, rendered to SVG, JSON or Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the --config file (if any) and LIFELINE_* overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured backend. Without one, the CLI caches on disk
// under the XDG cache directory.
func (c *CLI) newCache(ctx context.Context, opts cache.Options, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if (opts.Backend == "" || opts.Backend == cache.BackendFile) && opts.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Backend = cache.BackendFile
		opts.Dir = dir
	}
	cc, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", opts.Backend, err)
	}
	return cc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/lifeline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output ends in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// optionsFromConfig maps the loaded config onto pipeline options.
func optionsFromConfig(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Layout:   cfg.Layout,
		Formats:  append([]string(nil), cfg.Render.Formats...),
		Title:    cfg.Render.Title,
		Subtitle: cfg.Render.Subtitle,
		Scale:    cfg.Render.Scale,
	}
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so config defaults apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
