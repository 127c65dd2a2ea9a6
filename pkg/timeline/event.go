package timeline

import (
	"fmt"
	"strings"
	"time"

	apperr "github.com/matzehuels/lifeline/pkg/errors"
)

// DateLayout is the only accepted date form, DD/MM/YYYY.
const DateLayout = "02/01/2006"

const (
	dateWidth   = 10 // runes occupied by the date prefix
	descStart   = 11 // first rune of the description; the rune in between is the separator
	reorderSlot = 4
)

// ErrEmptyInput is returned (wrapped) by [Build] when no line produced an event.
var ErrEmptyInput = apperr.New(apperr.ErrCodeEmptyInput, "no valid events in input")

// Event is one dated entry of the timeline.
type Event struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// DateString formats the event date the same way it was written.
func (e Event) DateString() string {
	return e.Date.Format(DateLayout)
}

// DateParseError reports a line whose date prefix is not a DD/MM/YYYY calendar date.
// The line is skipped; it never aborts parsing.
type DateParseError struct {
	Line int    // 1-based line number in the input
	Text string // trimmed line content
	Err  error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("line %d: invalid date in %q: %v", e.Line, e.Text, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// ParseEvents reads one event per non-blank line, in file order. Lines failing
// date parsing are left out and returned as *DateParseError values.
func ParseEvents(text string) ([]Event, []error) {
	var (
		events   []Event
		warnings []error
	)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		ev, err := parseLine(line)
		if err != nil {
			warnings = append(warnings, &DateParseError{Line: i + 1, Text: line, Err: err})
			continue
		}
		events = append(events, ev)
	}
	return events, warnings
}

func parseLine(line string) (Event, error) {
	runes := []rune(line)
	date, err := time.Parse(DateLayout, string(runes[:min(dateWidth, len(runes))]))
	if err != nil {
		return Event{}, err
	}
	var desc string
	if len(runes) > descStart {
		desc = strings.TrimSpace(string(runes[descStart:]))
	}
	return Event{Date: date, Description: desc}, nil
}

// reorder pulls the event at index 4 out and puts it back at index 4, which
// leaves the sequence unchanged.
//
// TODO: the intent was presumably to move the fifth event somewhere else to
// start the zigzag; keep the no-op until the expected order is confirmed.
func reorder(events []Event) []Event {
	if len(events) <= reorderSlot {
		return events
	}
	moved := events[reorderSlot]
	out := append(append([]Event{}, events[:reorderSlot]...), events[reorderSlot+1:]...)
	return append(out[:reorderSlot], append([]Event{moved}, out[reorderSlot:]...)...)
}
