package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/lifeline/pkg/render/nodelink"
	"github.com/matzehuels/lifeline/pkg/render/sink"
	"github.com/matzehuels/lifeline/pkg/timeline"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s timeline.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, s, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, s timeline.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, buildSVGOptions(opts)...), nil
	case FormatJSON:
		return sink.RenderJSON(s)
	case FormatDOT:
		return []byte(nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed}))
	default:
		return nil, ValidateFormat(format)
	}
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithScale(opts.Scale)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Subtitle != "" {
		svgOpts = append(svgOpts, sink.WithSubtitle(opts.Subtitle))
	}
	return svgOpts
}
