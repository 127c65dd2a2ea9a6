package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// browseCommand creates the browse command: an interactive list of the
// events as they were placed.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse [events.txt]",
		Short: "Browse the laid-out events interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			text, err := pipeline.ReadInputFile(args[0])
			if err != nil {
				return err
			}
			opts := optionsFromConfig(cfg)
			opts.Logger = c.Logger
			scene, err := runner.Layout(cmd.Context(), text, opts)
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}

			p := tea.NewProgram(NewEventListModel(scene), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
