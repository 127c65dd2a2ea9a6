package timeline

// Connector is a cubic Bézier joining two consecutive event anchors. Both
// control points sit at the vertical midpoint, so the curve leaves Start and
// reaches End vertically.
type Connector struct {
	From     int   `json:"from"`
	To       int   `json:"to"`
	Start    Point `json:"start"`
	Control1 Point `json:"control1"`
	Control2 Point `json:"control2"`
	End      Point `json:"end"`
}

// Points returns the control polygon in drawing order.
func (c Connector) Points() [4]Point {
	return [4]Point{c.Start, c.Control1, c.Control2, c.End}
}

// At evaluates the curve at t in [0, 1].
func (c Connector) At(t float64) Point {
	u := 1 - t
	a, b, cc, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*c.Start.X + b*c.Control1.X + cc*c.Control2.X + d*c.End.X,
		Y: a*c.Start.Y + b*c.Control1.Y + cc*c.Control2.Y + d*c.End.Y,
	}
}

// Connect builds one connector per adjacent pair of points.
func Connect(points []Point) []Connector {
	out := make([]Connector, 0, max(0, len(points)-1))
	for i := 0; i+1 < len(points); i++ {
		p, q := points[i], points[i+1]
		mid := (p.Y + q.Y) / 2
		out = append(out, Connector{
			From:     i,
			To:       i + 1,
			Start:    p,
			Control1: Point{X: p.X, Y: mid},
			Control2: Point{X: q.X, Y: mid},
			End:      q,
		})
	}
	return out
}
