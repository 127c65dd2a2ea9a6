package timeline

import "math"

// Point is a location in layout units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in layout units.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Slot locates an event in the zigzag grid. Row -1 is the first row; zigzag
// rows count from 0.
type Slot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SlotOf returns the grid slot of the i-th event.
func SlotOf(i, rowSize int) Slot {
	if i < rowSize {
		return Slot{Row: -1, Col: i}
	}
	return Slot{Row: (i - rowSize) / rowSize, Col: (i - rowSize) % rowSize}
}

// Reversed reports whether the slot's row is traversed right to left.
func (s Slot) Reversed() bool {
	return s.Row >= 0 && s.Row%2 == 0
}

// PlanPositions places n events. The first cfg.RowSize events run left to
// right at y=0; after that rows alternate right-to-left and left-to-right,
// each one cfg.RowSpacing lower than the previous.
func PlanPositions(n int, cfg Config) []Point {
	cfg = cfg.WithDefaults()
	points := make([]Point, n)
	for i := range points {
		points[i] = position(SlotOf(i, cfg.RowSize), cfg)
	}
	return points
}

func position(s Slot, cfg Config) Point {
	if s.Row < 0 {
		return Point{X: float64(s.Col) * cfg.ColumnSpacing}
	}
	col := s.Col
	if s.Reversed() {
		col = cfg.RowSize - 1 - s.Col
	}
	return Point{
		X: float64(col) * cfg.ColumnSpacing,
		Y: -cfg.FirstRowOffset - float64(s.Row)*cfg.RowSpacing,
	}
}

// BoundsOf returns the smallest rectangle holding all points, grown by margin
// on every side. No points yields the zero Rect.
func BoundsOf(points []Point, margin float64) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range points {
		r.MinX = math.Min(r.MinX, p.X)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	r.MinX -= margin
	r.MinY -= margin
	r.MaxX += margin
	r.MaxY += margin
	return r
}
