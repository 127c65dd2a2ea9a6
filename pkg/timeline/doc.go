// Package timeline lays out a dated sequence of events as a zigzag diagram.
//
// The engine is a pure, single-pass pipeline over a block of text:
//
//  1. Parse: each non-blank line "DD/MM/YYYY description" becomes an [Event].
//     Lines with a malformed date are dropped and reported as [DateParseError].
//  2. Place: the first row holds [Config.RowSize] events left to right; the
//     following rows alternate direction (boustrophedon) and step downward.
//  3. Size: descriptions are greedily wrapped ([Wrap]) and each label [Box]
//     grows with its line count.
//  4. Connect: consecutive events are joined by cubic [Connector] curves that
//     leave and enter their anchors vertically.
//
// The result is a [Scene] in abstract layout units with y growing upward. It
// carries no pixels, fonts or colors; package sink turns it into SVG, JSON or
// Graphviz output.
//
// # Usage
//
//	scene, err := timeline.Build(text, timeline.DefaultConfig())
//	if err != nil && !errors.Is(err, timeline.ErrEmptyInput) {
//	    return err
//	}
//	for _, w := range scene.Warnings {
//	    log.Warn(w)
//	}
//
// Every function in this package is free of shared state and safe for
// concurrent use.
package timeline
