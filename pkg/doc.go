// Package pkg provides the core libraries for Lifeline timeline layout.
//
// # Overview
//
// Lifeline turns an ordered list of dated events into a zigzag timeline: the
// first row runs left to right, later rows alternate direction, and every
// event becomes a numbered box joined to its successor by a cubic connector.
// The pkg directory is organized into four main areas:
//
//  1. [timeline] - The layout engine (parse, plan, wrap, size, connect)
//  2. [render] - Output sinks (SVG, JSON, DOT, Graphviz SVG)
//  3. [pipeline] - Orchestration (parse → layout → render) with caching
//  4. [server] - The HTTP API over the pipeline
//
// # Architecture
//
// The typical data flow through Lifeline:
//
//	events.txt ("DD/MM/YYYY description" per line)
//	         ↓
//	    [timeline] package (events → scene)
//	         ↓
//	    [render/sink], [render/nodelink] packages (scene → artifacts)
//	         ↓
//	    SVG/JSON/DOT output
//
// # Quick Start
//
// Lay out a file and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/lifeline/pkg/render/sink"
//	    "github.com/matzehuels/lifeline/pkg/timeline"
//	)
//
//	scene, err := timeline.Build(text, timeline.DefaultConfig())
//	if err != nil {
//	    return err // wraps timeline.ErrEmptyInput when nothing parsed
//	}
//	for _, w := range scene.Warnings {
//	    log.Warn("skipped line", "reason", w)
//	}
//	svg := sink.RenderSVG(scene, sink.WithTitle("NECTIM"))
//
// # Main Packages
//
// [timeline] - Pure, deterministic layout. Units are abstract with y growing
// upward; the scene carries positions, wrapped lines, boxes, badges, date
// labels, connectors and the bounding rectangle.
//
// [render/sink] - Standalone SVG and the versioned scene JSON that external
// renderers consume.
//
// [render/nodelink] - Graphviz DOT with pinned positions, and SVG rendered by
// neato through go-graphviz.
//
// [pipeline] - Options validation, cache keys and the [pipeline.Runner] used
// by both the CLI and the API.
//
// [cache] - Cache backends: null, file (CLI), Redis and MongoDB (shared).
//
// [config] - TOML/YAML configuration files with LIFELINE_* environment
// overrides.
//
// [errors] - Structured errors with codes and HTTP status mapping.
//
// [observability] - Hooks for pipeline, cache and HTTP metrics.
//
// [server] - chi-based HTTP API: /v1/scene and /v1/render/{format}.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/timeline/...        # Specific package
//	go test -run Example ./pkg/...    # Examples only
//
// Redis and MongoDB cache tests skip unless LIFELINE_TEST_REDIS_ADDR or
// LIFELINE_TEST_MONGO_URI is set.
//
// [timeline]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/timeline
// [render]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/server
package pkg
