package timeline

import (
	"fmt"
	"strconv"
)

// Node is one placed event with everything a renderer needs to draw it.
type Node struct {
	Index    int       `json:"index"`
	Event    Event     `json:"event"`
	Slot     Slot      `json:"slot"`
	Position Point     `json:"position"`
	Lines    []string  `json:"lines"`
	Box      Box       `json:"box"`
	Badge    Badge     `json:"badge"`
	Date     DateLabel `json:"date"`
}

// Scene is the complete layout of one input. Nodes and Connectors are index
// aligned: Connectors[i] joins Nodes[i] and Nodes[i+1].
type Scene struct {
	Nodes      []Node      `json:"nodes"`
	Connectors []Connector `json:"connectors"`
	Bounds     Rect        `json:"bounds"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// Len returns the number of events in the scene.
func (s Scene) Len() int { return len(s.Nodes) }

// Events returns the events in layout order.
func (s Scene) Events() []Event {
	out := make([]Event, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.Event
	}
	return out
}

// Positions returns the anchor of every event, index aligned with Events.
func (s Scene) Positions() []Point {
	out := make([]Point, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.Position
	}
	return out
}

// Boxes returns the label box of every event, index aligned with Events.
func (s Scene) Boxes() []Box {
	out := make([]Box, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.Box
	}
	return out
}

// Rows returns the number of distinct rows the scene occupies.
func (s Scene) Rows() int {
	if len(s.Nodes) == 0 {
		return 0
	}
	return s.Nodes[len(s.Nodes)-1].Slot.Row + 2
}

// Assemble lays out already parsed events. It cannot fail.
func Assemble(events []Event, cfg Config) Scene {
	cfg = cfg.WithDefaults()
	points := PlanPositions(len(events), cfg)

	nodes := make([]Node, len(events))
	for i, ev := range events {
		lines := Wrap(ev.Description, cfg.WrapWidth)
		box := SizeBox(points[i], len(lines), cfg)
		nodes[i] = Node{
			Index:    i,
			Event:    ev,
			Slot:     SlotOf(i, cfg.RowSize),
			Position: points[i],
			Lines:    lines,
			Box:      box,
			Badge: Badge{
				Center: Point{X: box.CenterX - badgeOffsetX, Y: box.Top() + badgeOffsetY},
				Radius: badgeRadius,
				Label:  strconv.Itoa(i + 1),
			},
			Date: DateLabel{
				Anchor: Point{X: box.CenterX, Y: box.Top() + dateLabelOffset},
				Text:   ev.DateString(),
			},
		}
	}

	return Scene{
		Nodes:      nodes,
		Connectors: Connect(points),
		Bounds:     BoundsOf(points, cfg.Margin),
	}
}

// Build parses text and lays out the resulting events. Malformed lines end up
// in Scene.Warnings. If nothing parses, the empty scene is returned together
// with an error wrapping [ErrEmptyInput].
func Build(text string, cfg Config) (Scene, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Scene{}, err
	}

	events, warnings := ParseEvents(text)
	scene := Assemble(reorder(events), cfg)
	for _, w := range warnings {
		scene.Warnings = append(scene.Warnings, w.Error())
	}

	if len(events) == 0 {
		return scene, fmt.Errorf("build scene (%d lines skipped): %w", len(warnings), ErrEmptyInput)
	}
	return scene, nil
}
