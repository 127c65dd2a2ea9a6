// Package pipeline provides the parse → layout → render pipeline for lifeline.
//
// The CLI and the HTTP server both go through this package so that caching,
// logging and option defaults behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: parse the event text and build a [timeline.Scene]
//  2. Render: turn the scene into artifacts (SVG, JSON, DOT, Graphviz SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, text, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	    Title:   "NECTIM",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lifeline/pkg/cache"
	apperr "github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/render/sink"
	"github.com/matzehuels/lifeline/pkg/timeline"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatSVG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	switch format {
	case FormatGraphviz:
		return "graphviz.svg"
	case FormatDOT:
		return "dot"
	default:
		return format
	}
}

// ContentType returns the MIME type of an artifact.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraphviz:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Layout     timeline.Config `json:"layout"`
	AllowEmpty bool            `json:"allow_empty,omitempty"` // render an empty scene instead of failing

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // slot and coordinates in DOT labels

	// Runtime options (not serialized)
	Refresh bool        `json:"-"`
	Logger  *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the laid out timeline.
	Scene timeline.Scene

	// SceneHash is the content hash of the serialized scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount   int
	SkippedLines int
	RowCount     int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout applies layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Layout.Validate()
}

// ValidateForRender applies render defaults and validates them.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Scale < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	}
	if err := apperr.ValidateLabel(o.Title); err != nil {
		return err
	}
	if err := apperr.ValidateLabel(o.Subtitle); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// SceneKeyOpts returns cache key options for scene computation.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	c := o.Layout.WithDefaults()
	return cache.SceneKeyOpts{
		WrapWidth:      c.WrapWidth,
		Margin:         c.Margin,
		BoxWidth:       c.BoxWidth,
		RowSize:        c.RowSize,
		ColumnSpacing:  c.ColumnSpacing,
		FirstRowOffset: c.FirstRowOffset,
		RowSpacing:     c.RowSpacing,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Only the SVG sink reads title, subtitle and scale.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Title, k.Subtitle, k.Scale = o.Title, o.Subtitle, o.Scale
	case FormatDOT, FormatGraphviz:
		k.Detailed = o.Detailed
	}
	return k
}
