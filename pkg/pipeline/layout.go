package pipeline

import (
	"errors"

	"github.com/matzehuels/lifeline/pkg/timeline"
)

// Layout builds the scene for text. Skipped lines are logged as warnings and
// kept in Scene.Warnings. Empty input fails unless opts.AllowEmpty is set.
func Layout(text string, opts Options) (timeline.Scene, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return timeline.Scene{}, err
	}

	scene, err := timeline.Build(text, opts.Layout)
	for _, w := range scene.Warnings {
		opts.Logger.Warn("skipped line", "reason", w)
	}
	if err != nil {
		if opts.AllowEmpty && errors.Is(err, timeline.ErrEmptyInput) {
			opts.Logger.Debug("empty timeline allowed", "skipped", len(scene.Warnings))
			return scene, nil
		}
		return scene, err
	}
	return scene, nil
}
