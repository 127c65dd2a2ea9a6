// Package render groups the output stages of lifeline.
//
// A [timeline.Scene] carries every coordinate, so rendering is a pure
// translation step with two families of output:
//
//   - [sink]: standalone SVG and the versioned JSON scene document
//   - [nodelink]: Graphviz DOT with pinned positions, rendered via neato
//
// Rasterizing (PNG, PDF) is left to external tools.
package render
