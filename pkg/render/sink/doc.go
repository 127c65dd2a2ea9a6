// Package sink turns a laid out [timeline.Scene] into output documents.
//
// # Overview
//
// A "sink" is the last step of the pipeline. The scene already holds every
// coordinate, so sinks only map layout units to their own space and write
// text. This package provides:
//
//   - SVG: a standalone vector drawing of the timeline
//   - JSON: the scene itself, for external renderers and caching
//
// Graphviz output lives in the sibling [nodelink] package.
//
// # SVG Output
//
// [RenderSVG] maps one layout unit to [DefaultScale] pixels and flips the y
// axis. Connectors are drawn first so boxes cover their ends:
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithTitle("NECTIM"),
//	    sink.WithSubtitle("Línea de Vida - Terceros"),
//	)
//
// # JSON Output
//
// [RenderJSON] writes a versioned document that [ParseJSON] reads back
// without loss, which is how the pipeline caches scenes.
package sink
