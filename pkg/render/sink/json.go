package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/lifeline/pkg/timeline"
)

// FormatVersion is bumped whenever the JSON document shape changes.
const FormatVersion = 1

type jsonOutput struct {
	Version int     `json:"version"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	timeline.Scene
}

// RenderJSON exports the scene as a pretty-printed JSON document for
// external renderers. Width and Height are the bounds size in layout units.
func RenderJSON(s timeline.Scene) ([]byte, error) {
	out := jsonOutput{
		Version: FormatVersion,
		Width:   s.Bounds.Width(),
		Height:  s.Bounds.Height(),
		Scene:   s,
	}
	return json.MarshalIndent(out, "", "  ")
}

// ParseJSON reads a document written by [RenderJSON].
func ParseJSON(data []byte) (timeline.Scene, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return timeline.Scene{}, fmt.Errorf("decode scene: %w", err)
	}
	if in.Version != FormatVersion {
		return timeline.Scene{}, fmt.Errorf("unsupported scene version %d", in.Version)
	}
	return in.Scene, nil
}
