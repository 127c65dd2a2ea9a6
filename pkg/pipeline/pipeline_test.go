package pipeline

import (
	"testing"

	apperr "github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/render/sink"
	"github.com/matzehuels/lifeline/pkg/timeline"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"graphviz", false},
		{"png", true},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, apperr.GetCode(err), apperr.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		FormatSVG:      "svg",
		FormatJSON:     "json",
		FormatDOT:      "dot",
		FormatGraphviz: "graphviz.svg",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatSVG:      "image/svg+xml",
		FormatGraphviz: "image/svg+xml",
		FormatJSON:     "application/json",
		"unknown":      "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if opts.Layout != timeline.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", opts.Layout)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != sink.DefaultScale {
		t.Errorf("Scale should be %v, got %v", sink.DefaultScale, opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsDefaultFormatsNotShared(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Formats[0] = FormatJSON
	if DefaultFormats[0] != FormatSVG {
		t.Error("mutating options should not change DefaultFormats")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code apperr.Code
	}{
		{"bad format", Options{Formats: []string{"png"}}, apperr.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, apperr.ErrCodeInvalidConfig},
		{"bad layout", Options{Layout: timeline.Config{Margin: -1}}, apperr.ErrCodeInvalidConfig},
		{"control char title", Options{Title: "a\nb"}, apperr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("ValidateAndSetDefaults() should fail")
			}
			if !apperr.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", apperr.GetCode(err), tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"json"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	layout, scale := opts.Layout, opts.Scale

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Layout != layout {
		t.Error("Layout changed on second call")
	}
	if opts.Scale != scale {
		t.Error("Scale changed on second call")
	}
}

func TestSceneKeyOpts(t *testing.T) {
	a := Options{}
	b := Options{Layout: timeline.DefaultConfig()}
	if a.SceneKeyOpts() != b.SceneKeyOpts() {
		t.Error("zero layout and explicit defaults should share a scene key")
	}

	c := Options{Layout: timeline.Config{WrapWidth: 30}}
	if a.SceneKeyOpts() == c.SceneKeyOpts() {
		t.Error("different wrap width should change the scene key")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Title: "NECTIM", Scale: 40, Detailed: true}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if svg.Title != "NECTIM" || svg.Scale != 40 {
		t.Errorf("svg key opts = %+v, want title and scale", svg)
	}

	js := opts.ArtifactKeyOpts(FormatJSON)
	if js.Title != "" || js.Scale != 0 || js.Detailed {
		t.Errorf("json key opts = %+v, want format only", js)
	}

	dot := opts.ArtifactKeyOpts(FormatDOT)
	if !dot.Detailed || dot.Title != "" {
		t.Errorf("dot key opts = %+v, want detailed only", dot)
	}
}
