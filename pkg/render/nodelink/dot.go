package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lifeline/pkg/timeline"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the grid slot and anchor coordinates to every label.
	Detailed bool
}

// NodeID is the DOT identifier of the i-th event.
func NodeID(i int) string { return "e" + strconv.Itoa(i+1) }

// ToDOT converts a scene to Graphviz DOT. Every node is pinned at its layout
// position (one layout unit per inch), so neato reproduces the zigzag instead
// of computing its own placement.
func ToDOT(s timeline.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"sans-serif\", fontsize=10, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none, penwidth=2];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", NodeID(n.Index), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range s.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q;\n", NodeID(c.From), NodeID(c.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n timeline.Node, detailed bool) string {
	parts := append([]string{n.Date.Text}, n.Lines...)
	if detailed {
		parts = append(parts,
			fmt.Sprintf("slot: %d,%d", n.Slot.Row, n.Slot.Col),
			fmt.Sprintf("pos: %g,%g", n.Position.X, n.Position.Y))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n timeline.Node, label string) []string {
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("xlabel=%q", n.Badge.Label),
		fmt.Sprintf("pos=\"%g,%g!\"", n.Position.X, n.Position.Y),
		fmt.Sprintf("width=%g", n.Box.Width),
		fmt.Sprintf("height=%g", n.Box.Height),
	}
}

// RenderSVG renders DOT produced by [ToDOT] to SVG using the neato engine,
// which honors the pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
