// Package nodelink renders timeline scenes through Graphviz.
//
// # Overview
//
// The scene is exported as a DOT digraph in which every event is a rounded
// box and every connector an edge. Positions are pinned with pos="x,y!", so
// the neato engine keeps the zigzag computed by [timeline.Build].
//
// # Usage
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT text can also be saved and post-processed with the Graphviz
// command line tools (neato -n2 keeps the pinned positions).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
