package timeline

import (
	apperr "github.com/matzehuels/lifeline/pkg/errors"
)

// Default layout parameters.
const (
	DefaultWrapWidth      = 20
	DefaultMargin         = 1.5
	DefaultBoxWidth       = 1.5
	DefaultRowSize        = 4
	DefaultColumnSpacing  = 3.0
	DefaultFirstRowOffset = 2.0
	DefaultRowSpacing     = 2.2
)

// Config holds the tunable layout parameters. Zero fields mean "use the
// default"; see [Config.WithDefaults].
type Config struct {
	WrapWidth      int     `json:"wrap_width,omitempty" toml:"wrap_width" yaml:"wrap_width" env:"WRAP_WIDTH"`
	Margin         float64 `json:"margin,omitempty" toml:"margin" yaml:"margin" env:"MARGIN"`
	BoxWidth       float64 `json:"box_width,omitempty" toml:"box_width" yaml:"box_width" env:"BOX_WIDTH"`
	RowSize        int     `json:"row_size,omitempty" toml:"row_size" yaml:"row_size" env:"ROW_SIZE"`
	ColumnSpacing  float64 `json:"column_spacing,omitempty" toml:"column_spacing" yaml:"column_spacing" env:"COLUMN_SPACING"`
	FirstRowOffset float64 `json:"first_row_offset,omitempty" toml:"first_row_offset" yaml:"first_row_offset" env:"FIRST_ROW_OFFSET"`
	RowSpacing     float64 `json:"row_spacing,omitempty" toml:"row_spacing" yaml:"row_spacing" env:"ROW_SPACING"`
}

// DefaultConfig returns the configuration every other default derives from.
func DefaultConfig() Config {
	return Config{
		WrapWidth:      DefaultWrapWidth,
		Margin:         DefaultMargin,
		BoxWidth:       DefaultBoxWidth,
		RowSize:        DefaultRowSize,
		ColumnSpacing:  DefaultColumnSpacing,
		FirstRowOffset: DefaultFirstRowOffset,
		RowSpacing:     DefaultRowSpacing,
	}
}

// WithDefaults returns a copy of c with every zero field set to its default.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.WrapWidth == 0 {
		c.WrapWidth = d.WrapWidth
	}
	if c.Margin == 0 {
		c.Margin = d.Margin
	}
	if c.BoxWidth == 0 {
		c.BoxWidth = d.BoxWidth
	}
	if c.RowSize == 0 {
		c.RowSize = d.RowSize
	}
	if c.ColumnSpacing == 0 {
		c.ColumnSpacing = d.ColumnSpacing
	}
	if c.FirstRowOffset == 0 {
		c.FirstRowOffset = d.FirstRowOffset
	}
	if c.RowSpacing == 0 {
		c.RowSpacing = d.RowSpacing
	}
	return c
}

// Validate reports the first parameter that cannot produce a layout.
// It should be called on a defaulted config.
func (c Config) Validate() error {
	switch {
	case c.WrapWidth <= 0:
		return apperr.New(apperr.ErrCodeInvalidConfig, "wrap_width must be positive, got %d", c.WrapWidth)
	case c.Margin <= 0:
		return apperr.New(apperr.ErrCodeInvalidConfig, "margin must be positive, got %g", c.Margin)
	case c.BoxWidth <= 0:
		return apperr.New(apperr.ErrCodeInvalidConfig, "box_width must be positive, got %g", c.BoxWidth)
	case c.RowSize <= 0:
		return apperr.New(apperr.ErrCodeInvalidConfig, "row_size must be positive, got %d", c.RowSize)
	case c.ColumnSpacing <= 0:
		return apperr.New(apperr.ErrCodeInvalidConfig, "column_spacing must be positive, got %g", c.ColumnSpacing)
	case c.FirstRowOffset <= 0:
		return apperr.New(apperr.ErrCodeInvalidConfig, "first_row_offset must be positive, got %g", c.FirstRowOffset)
	case c.RowSpacing <= 0:
		return apperr.New(apperr.ErrCodeInvalidConfig, "row_spacing must be positive, got %g", c.RowSpacing)
	}
	return nil
}
