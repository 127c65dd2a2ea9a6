package timeline

// Box sizing constants, in layout units.
const (
	boxBaseHeight   = 0.3
	boxLineHeight   = 0.2
	badgeOffsetX    = 0.8
	badgeOffsetY    = 0.2
	badgeRadius     = 0.2
	dateLabelOffset = 0.02
)

// Box is a label box centered on an event position.
type Box struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (b Box) Left() float64   { return b.CenterX - b.Width/2 }
func (b Box) Right() float64  { return b.CenterX + b.Width/2 }
func (b Box) Top() float64    { return b.CenterY + b.Height/2 }
func (b Box) Bottom() float64 { return b.CenterY - b.Height/2 }

// BoxHeight is the height of a box holding the given number of text lines.
func BoxHeight(lines int) float64 {
	return boxBaseHeight + float64(lines)*boxLineHeight
}

// SizeBox returns the box for a label of the given line count centered at c.
func SizeBox(c Point, lines int, cfg Config) Box {
	cfg = cfg.WithDefaults()
	return Box{
		CenterX: c.X,
		CenterY: c.Y,
		Width:   cfg.BoxWidth,
		Height:  BoxHeight(lines),
	}
}

// Badge is the numbered circle drawn at a box's upper-left corner.
type Badge struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// DateLabel is a horizontally centered text anchored just above a box.
type DateLabel struct {
	Anchor Point  `json:"anchor"`
	Text   string `json:"text"`
}
