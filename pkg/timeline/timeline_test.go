package timeline

import (
	"errors"
	"math"
	"strings"
	"testing"

	apperr "github.com/matzehuels/lifeline/pkg/errors"
)

const sampleInput = ` CONFIRMAR
13/04/2023 PTE CONFIRMAR
12/04/2023 PTE CONFIRMAR
10/04/2023 PROGRAMAR TENDIDO
05/04/2023 TELEFONICA A SITIO
30/03/2023 TELEFONICA A SITIO
23/03/2023 APROBACION
16/03/2023 FECHA RTA
07/03/2023 PERSONAL TELEFONICA
06/03/2023 PROGRAMAR TENDIDO.
02/03/2023 PROXIMA SEMANA 
01/03/2023 PERSONAL EOC                      
28/02/2023 PROGRAMAR TENDIDO
23/02/2023 RTA TENTATIVA
`

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearPoint(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestParseEvents(t *testing.T) {
	events, warnings := ParseEvents(sampleInput)
	if len(events) != 13 {
		t.Fatalf("len(events) = %d, want 13", len(events))
	}
	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1", len(warnings))
	}

	var dpe *DateParseError
	if !errors.As(warnings[0], &dpe) {
		t.Fatalf("warning type = %T, want *DateParseError", warnings[0])
	}
	if dpe.Line != 1 || dpe.Text != "CONFIRMAR" {
		t.Errorf("DateParseError = {%d %q}, want {1 \"CONFIRMAR\"}", dpe.Line, dpe.Text)
	}

	first := events[0]
	if first.DateString() != "13/04/2023" {
		t.Errorf("first date = %s, want 13/04/2023", first.DateString())
	}
	if first.Description != "PTE CONFIRMAR" {
		t.Errorf("first description = %q, want %q", first.Description, "PTE CONFIRMAR")
	}
	if got := events[9].Description; got != "PROXIMA SEMANA" {
		t.Errorf("trailing whitespace not trimmed: %q", got)
	}
}

func TestParseEventsLines(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantDesc string
	}{
		{"valid", "01/02/2024 KICKOFF", true, "KICKOFF"},
		{"date only", "01/02/2024", true, ""},
		{"extra spaces", "01/02/2024    spaced   out  ", true, "spaced   out"},
		{"not a date", "not-a-date SOME TEXT", false, ""},
		{"short", "1/2/2024 x", false, ""},
		{"impossible day", "31/02/2024 nope", false, ""},
		{"month 13", "01/13/2024 nope", false, ""},
		{"too short", "01/02", false, ""},
		{"multibyte description", "05/05/2023 Línea de Vida", true, "Línea de Vida"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, warnings := ParseEvents(tt.line)
			if ok := len(events) == 1; ok != tt.wantOK {
				t.Fatalf("parsed = %v, want %v (warnings %v)", ok, tt.wantOK, warnings)
			}
			if tt.wantOK && events[0].Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", events[0].Description, tt.wantDesc)
			}
			if !tt.wantOK && len(warnings) != 1 {
				t.Errorf("len(warnings) = %d, want 1", len(warnings))
			}
		})
	}
}

func TestParseEventsSkipKeepsOrder(t *testing.T) {
	input := "01/01/2024 A\nnot-a-date SOME TEXT\n02/01/2024 B\n\n03/01/2024 C"
	events, warnings := ParseEvents(input)
	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1", len(warnings))
	}
	var got []string
	for _, e := range events {
		got = append(got, e.Description)
	}
	if strings.Join(got, ",") != "A,B,C" {
		t.Errorf("order = %v, want [A B C]", got)
	}
	var dpe *DateParseError
	if errors.As(warnings[0], &dpe) && dpe.Line != 2 {
		t.Errorf("Line = %d, want 2", dpe.Line)
	}
}

func TestReorderIsIdentity(t *testing.T) {
	events, _ := ParseEvents(sampleInput)
	got := reorder(events)
	if len(got) != len(events) {
		t.Fatalf("len = %d, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Errorf("reorder moved index %d: %v -> %v", i, events[i], got[i])
		}
	}

	short := events[:4]
	if got := reorder(short); len(got) != 4 {
		t.Errorf("reorder of 4 events changed length to %d", len(got))
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"PTE CONFIRMAR", 20, []string{"PTE CONFIRMAR"}},
		{"", 20, nil},
		{"   ", 20, nil},
		{"PERSONAL TELEFONICA A SITIO", 20, []string{"PERSONAL TELEFONICA", "A SITIO"}},
		{"exactly twenty chars", 20, []string{"exactly twenty chars"}},
		{"supercalifragilistic-expialidocious tail", 20, []string{"supercalifragilistic-expialidocious", "tail"}},
		{"a b c", 1, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		got := Wrap(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestWrapRoundTrip(t *testing.T) {
	texts := []string{
		"the quick  brown fox jumps over\tthe lazy dog",
		"PROGRAMAR TENDIDO DE FIBRA OPTICA EN SITIO",
		"Línea de vida con acentos y eñes en el texto",
	}
	for _, text := range texts {
		for _, width := range []int{5, 10, 20, 40} {
			lines := Wrap(text, width)
			if got, want := strings.Join(lines, " "), strings.Join(strings.Fields(text), " "); got != want {
				t.Errorf("round trip (%d) = %q, want %q", width, got, want)
			}
			for _, l := range lines {
				if l == "" {
					t.Errorf("Wrap(%q, %d) produced an empty line", text, width)
				}
				if n := len([]rune(l)); n > width && strings.Contains(l, " ") {
					t.Errorf("line %q exceeds width %d", l, width)
				}
			}
		}
	}
}

func TestPlanPositions(t *testing.T) {
	points := PlanPositions(13, DefaultConfig())
	want := []Point{
		{0, 0}, {3, 0}, {6, 0}, {9, 0},
		{9, -2}, {6, -2}, {3, -2}, {0, -2},
		{0, -4.2}, {3, -4.2}, {6, -4.2}, {9, -4.2},
		{9, -6.4},
	}
	if len(points) != len(want) {
		t.Fatalf("len = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if !nearPoint(points[i], want[i]) {
			t.Errorf("points[%d] = %v, want %v", i, points[i], want[i])
		}
	}
}

func TestPlanPositionsFirstRow(t *testing.T) {
	for n := 0; n <= 4; n++ {
		points := PlanPositions(n, Config{})
		if len(points) != n {
			t.Fatalf("PlanPositions(%d) len = %d", n, len(points))
		}
		for i, p := range points {
			if !nearPoint(p, Point{X: 3 * float64(i)}) {
				t.Errorf("n=%d points[%d] = %v, want (%d, 0)", n, i, p, 3*i)
			}
		}
	}
}

func TestPlanPositionsCustomRowSize(t *testing.T) {
	cfg := Config{RowSize: 2, ColumnSpacing: 1, FirstRowOffset: 1, RowSpacing: 1}
	got := PlanPositions(6, cfg)
	want := []Point{{0, 0}, {1, 0}, {1, -1}, {0, -1}, {0, -2}, {1, -2}}
	for i := range want {
		if !nearPoint(got[i], want[i]) {
			t.Errorf("points[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBoundsOf(t *testing.T) {
	points := PlanPositions(13, DefaultConfig())
	r := BoundsOf(points, DefaultMargin)
	want := Rect{MinX: -1.5, MinY: -7.9, MaxX: 10.5, MaxY: 1.5}
	if !near(r.MinX, want.MinX) || !near(r.MaxX, want.MaxX) || !near(r.MinY, want.MinY) || !near(r.MaxY, want.MaxY) {
		t.Errorf("BoundsOf = %+v, want %+v", r, want)
	}
	for _, p := range points {
		if !r.Contains(p) {
			t.Errorf("bounds %+v do not contain %v", r, p)
		}
	}
	if (BoundsOf(nil, 1.5) != Rect{}) {
		t.Error("BoundsOf(nil) should be the zero Rect")
	}
}

func TestBoxHeight(t *testing.T) {
	if !near(BoxHeight(1), 0.5) {
		t.Errorf("BoxHeight(1) = %v, want 0.5", BoxHeight(1))
	}
	if !near(BoxHeight(2), 0.7) {
		t.Errorf("BoxHeight(2) = %v, want 0.7", BoxHeight(2))
	}
	for n := 0; n < 10; n++ {
		if BoxHeight(n+1) < BoxHeight(n) {
			t.Errorf("BoxHeight not monotonic at %d", n)
		}
	}

	b := SizeBox(Point{X: 3, Y: -2}, 2, DefaultConfig())
	if !near(b.Left(), 2.25) || !near(b.Right(), 3.75) || !near(b.Top(), -1.65) || !near(b.Bottom(), -2.35) {
		t.Errorf("SizeBox edges = [%v %v %v %v]", b.Left(), b.Right(), b.Bottom(), b.Top())
	}
}

func TestConnect(t *testing.T) {
	if got := Connect(nil); len(got) != 0 {
		t.Errorf("Connect(nil) len = %d, want 0", len(got))
	}
	if got := Connect([]Point{{0, 0}}); len(got) != 0 {
		t.Errorf("Connect(1 point) len = %d, want 0", len(got))
	}

	points := []Point{{9, 0}, {9, -2}, {6, -2}}
	cs := Connect(points)
	if len(cs) != 2 {
		t.Fatalf("len = %d, want 2", len(cs))
	}
	c := cs[0]
	if !nearPoint(c.Control1, Point{9, -1}) || !nearPoint(c.Control2, Point{9, -1}) {
		t.Errorf("controls = %v %v, want (9,-1) (9,-1)", c.Control1, c.Control2)
	}
	pts := cs[1].Points()
	want := [4]Point{{9, -2}, {9, -2}, {6, -2}, {6, -2}}
	for i := range want {
		if !nearPoint(pts[i], want[i]) {
			t.Errorf("Points()[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
	if !nearPoint(c.At(0), c.Start) || !nearPoint(c.At(1), c.End) {
		t.Errorf("At(0)/At(1) = %v/%v, want endpoints", c.At(0), c.At(1))
	}
}

func TestBuild(t *testing.T) {
	scene, err := Build(sampleInput, DefaultConfig())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if scene.Len() != 13 {
		t.Fatalf("Len = %d, want 13", scene.Len())
	}
	if len(scene.Connectors) != 12 {
		t.Errorf("len(Connectors) = %d, want 12", len(scene.Connectors))
	}
	if len(scene.Positions()) != len(scene.Events()) || len(scene.Boxes()) != len(scene.Events()) {
		t.Error("positions, events and boxes are not index aligned")
	}
	if len(scene.Warnings) != 1 {
		t.Errorf("len(Warnings) = %d, want 1", len(scene.Warnings))
	}
	if p := scene.Nodes[4].Position; !nearPoint(p, Point{9, -2}) {
		t.Errorf("Positions[4] = %v, want (9, -2)", p)
	}
	if scene.Rows() != 4 {
		t.Errorf("Rows = %d, want 4", scene.Rows())
	}

	for i, c := range scene.Connectors {
		if !nearPoint(c.Start, scene.Nodes[i].Position) || !nearPoint(c.End, scene.Nodes[i+1].Position) {
			t.Errorf("connector %d does not join nodes %d and %d", i, i, i+1)
		}
	}

	pos := scene.Positions()
	minX, maxX := pos[0].X, pos[0].X
	for _, p := range pos {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
	}
	if !near(scene.Bounds.MinX, minX-1.5) || !near(scene.Bounds.MaxX, maxX+1.5) {
		t.Errorf("Bounds X = [%v, %v], want [%v, %v]", scene.Bounds.MinX, scene.Bounds.MaxX, minX-1.5, maxX+1.5)
	}
}

func TestBuildDecorations(t *testing.T) {
	scene, err := Build("10/04/2023 PROGRAMAR TENDIDO\n05/04/2023 TELEFONICA A SITIO", DefaultConfig())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	n := scene.Nodes[1]
	if n.Badge.Label != "2" || !near(n.Badge.Radius, 0.2) {
		t.Errorf("badge = %+v", n.Badge)
	}
	if want := (Point{X: 3 - 0.8, Y: n.Box.Top() + 0.2}); !nearPoint(n.Badge.Center, want) {
		t.Errorf("badge center = %v, want %v", n.Badge.Center, want)
	}
	if n.Date.Text != "05/04/2023" || !near(n.Date.Anchor.Y, n.Box.Top()+0.02) {
		t.Errorf("date label = %+v", n.Date)
	}
	if len(n.Lines) != 1 || !near(n.Box.Height, 0.5) {
		t.Errorf("lines = %q height = %v", n.Lines, n.Box.Height)
	}
}

func TestBuildEmpty(t *testing.T) {
	scene, err := Build("garbage\n\nmore garbage", DefaultConfig())
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if !apperr.Is(err, apperr.ErrCodeEmptyInput) {
		t.Errorf("code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeEmptyInput)
	}
	if scene.Len() != 0 || len(scene.Connectors) != 0 {
		t.Errorf("empty scene has %d nodes, %d connectors", scene.Len(), len(scene.Connectors))
	}
	if len(scene.Warnings) != 2 {
		t.Errorf("len(Warnings) = %d, want 2", len(scene.Warnings))
	}
}

func TestBuildInvalidConfig(t *testing.T) {
	_, err := Build(sampleInput, Config{Margin: -1})
	if !apperr.Is(err, apperr.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative margin", func(c *Config) { c.Margin = -1 }, true},
		{"negative first row offset", func(c *Config) { c.FirstRowOffset = -2 }, true},
		{"negative row spacing", func(c *Config) { c.RowSpacing = -2.2 }, true},
		{"negative wrap width", func(c *Config) { c.WrapWidth = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.WithDefaults().Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigZeroMeansDefault(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg != DefaultConfig() {
		t.Errorf("Config{}.WithDefaults() = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestEmptyDescriptionHasNoLines(t *testing.T) {
	if got := Wrap("", 20); got == nil {
		t.Error("Wrap(\"\") = nil, want empty slice")
	}
	s, err := Build("01/02/2024", DefaultConfig())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if n := s.Nodes[0]; n.Lines == nil || len(n.Lines) != 0 {
		t.Errorf("Lines = %#v, want empty non-nil slice", n.Lines)
	}
}

func TestConnectorCount(t *testing.T) {
	for n := 0; n < 20; n++ {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteString("01/01/2024 event\n")
		}
		scene, _ := Build(b.String(), DefaultConfig())
		if scene.Len() != n {
			t.Errorf("n=%d: Len = %d", n, scene.Len())
		}
		if want := max(0, n-1); len(scene.Connectors) != want {
			t.Errorf("n=%d: len(Connectors) = %d, want %d", n, len(scene.Connectors), want)
		}
	}
}
