package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/lifeline/pkg/timeline"
)

// DefaultScale is the number of pixels per layout unit.
const DefaultScale = 80.0

const (
	boxPad         = 0.2  // rounded box padding around the label area, layout units
	textSize       = 0.15 // description font size, layout units
	dateSize       = 0.16
	badgeTextSize  = 0.2
	headerHeight   = 70.0 // pixels reserved for title and subtitle
	titleFontSize  = 28.0
	subtitleSize   = 16.0
	connectorWidth = 2.0
)

// Palette holds the colors used by [RenderSVG].
type Palette struct {
	Background string
	Connector  string
	BoxFill    string
	BoxStroke  string
	BadgeFill  string
	BadgeText  string
	Text       string
}

// DefaultPalette matches the printed timeline sheets: white boxes, black
// connectors and dark navy badges.
var DefaultPalette = Palette{
	Background: "#ffffff",
	Connector:  "#000000",
	BoxFill:    "#ffffff",
	BoxStroke:  "#000000",
	BadgeFill:  "#252440",
	BadgeText:  "#ffffff",
	Text:       "#000000",
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale    float64
	title    string
	subtitle string
	palette  Palette
}

func WithScale(s float64) SVGOption   { return func(r *svgRenderer) { r.scale = s } }
func WithTitle(t string) SVGOption    { return func(r *svgRenderer) { r.title = t } }
func WithSubtitle(t string) SVGOption { return func(r *svgRenderer) { r.subtitle = t } }
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// RenderSVG draws a scene as a standalone SVG document. Layout y grows
// upward, so the y axis is flipped when mapping to pixels.
func RenderSVG(s timeline.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	header := 0.0
	if r.title != "" || r.subtitle != "" {
		header = headerHeight
	}
	width := s.Bounds.Width() * r.scale
	height := s.Bounds.Height()*r.scale + header

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.palette.Background)

	r.renderHeader(&buf, width)

	pr := projection{bounds: s.Bounds, scale: r.scale, top: header}
	for _, c := range s.Connectors {
		r.renderConnector(&buf, pr, c)
	}
	for _, n := range s.Nodes {
		r.renderNode(&buf, pr, n)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: DefaultScale, palette: DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}
	return r
}

// projection maps layout units to SVG pixels.
type projection struct {
	bounds timeline.Rect
	scale  float64
	top    float64
}

func (p projection) x(v float64) float64    { return (v - p.bounds.MinX) * p.scale }
func (p projection) y(v float64) float64    { return p.top + (p.bounds.MaxY-v)*p.scale }
func (p projection) size(v float64) float64 { return v * p.scale }

func (r *svgRenderer) renderHeader(buf *bytes.Buffer, width float64) {
	if r.title != "" {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="%.0f" font-weight="bold" fill="%s">%s</text>`+"\n",
			width/2, headerHeight*0.45, titleFontSize, r.palette.Text, EscapeXML(r.title))
	}
	if r.subtitle != "" {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
			width/2, headerHeight*0.8, subtitleSize, r.palette.Text, EscapeXML(r.subtitle))
	}
}

func (r *svgRenderer) renderConnector(buf *bytes.Buffer, p projection, c timeline.Connector) {
	fmt.Fprintf(buf, `  <path class="connector" d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		p.x(c.Start.X), p.y(c.Start.Y),
		p.x(c.Control1.X), p.y(c.Control1.Y),
		p.x(c.Control2.X), p.y(c.Control2.Y),
		p.x(c.End.X), p.y(c.End.Y),
		r.palette.Connector, connectorWidth)
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, p projection, n timeline.Node) {
	b := n.Box
	fmt.Fprintf(buf, `  <g class="event" id="event-%d">`+"\n", n.Index+1)

	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		p.x(b.Left()-boxPad), p.y(b.Top()+boxPad),
		p.size(b.Width+2*boxPad), p.size(b.Height+2*boxPad),
		p.size(boxPad), r.palette.BoxFill, r.palette.BoxStroke)

	fmt.Fprintf(buf, `    <text class="date" x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="%.1f" font-weight="bold" fill="%s">%s</text>`+"\n",
		p.x(n.Date.Anchor.X), p.y(n.Date.Anchor.Y), p.size(dateSize), r.palette.Text, EscapeXML(n.Date.Text))

	lineHeight := p.size(b.Height-0.3) / float64(max(1, len(n.Lines)))
	first := p.y(b.CenterY) - lineHeight*float64(len(n.Lines)-1)/2
	for i, line := range n.Lines {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
			p.x(b.CenterX), first+float64(i)*lineHeight, p.size(textSize), r.palette.Text, EscapeXML(line))
	}

	fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		p.x(n.Badge.Center.X), p.y(n.Badge.Center.Y), p.size(n.Badge.Radius), r.palette.BadgeFill)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.1f" font-weight="bold" fill="%s">%s</text>`+"\n",
		p.x(n.Badge.Center.X), p.y(n.Badge.Center.Y), p.size(badgeTextSize), r.palette.BadgeText, EscapeXML(n.Badge.Label))

	buf.WriteString("  </g>\n")
}

// EscapeXML escapes s for use as SVG text content or attribute value.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
