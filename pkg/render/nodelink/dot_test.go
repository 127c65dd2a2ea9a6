package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/lifeline/pkg/timeline"
)

func testScene(t *testing.T) timeline.Scene {
	t.Helper()
	s, err := timeline.Build("13/04/2023 PTE CONFIRMAR\n20/04/2023 Visita\n02/05/2023 Auditoría", timeline.Config{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return s
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testScene(t), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, id := range []string{`"e1"`, `"e2"`, `"e3"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("ToDOT() output missing node %s", id)
		}
	}
	if !strings.Contains(dot, `"e1" -> "e2"`) || !strings.Contains(dot, `"e2" -> "e3"`) {
		t.Error("ToDOT() output missing connector edges")
	}
	if strings.Contains(dot, `"e3" -> `) {
		t.Error("ToDOT() last event should have no outgoing edge")
	}
}

func TestToDOT_PinnedPositions(t *testing.T) {
	dot := ToDOT(testScene(t), Options{})

	for _, want := range []string{`pos="0,0!"`, `pos="3,0!"`, `pos="6,0!"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
}

func TestToDOT_Labels(t *testing.T) {
	dot := ToDOT(testScene(t), Options{})
	if !strings.Contains(dot, `label="13/04/2023\nPTE CONFIRMAR"`) {
		t.Error("ToDOT() label should hold date and wrapped lines")
	}
	if !strings.Contains(dot, `xlabel="2"`) {
		t.Error("ToDOT() missing badge number")
	}
	if strings.Contains(dot, "slot:") {
		t.Error("ToDOT() non-detailed output should not include slots")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testScene(t), Options{Detailed: true})
	if !strings.Contains(dot, "slot: -1,1") {
		t.Error("ToDOT() detailed output missing slot info")
	}
	if !strings.Contains(dot, "pos: 3,0") {
		t.Error("ToDOT() detailed output missing position")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(timeline.Scene{}, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(empty) = %q", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT(empty) should have no edges")
	}
}

func TestNodeID(t *testing.T) {
	if got := NodeID(0); got != "e1" {
		t.Errorf("NodeID(0) = %q, want e1", got)
	}
	if got := NodeID(12); got != "e13" {
		t.Errorf("NodeID(12) = %q, want e13", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testScene(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %q", got)
	}
}
