package timeline

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text on whitespace and greedily packs the words into lines of
// at most width characters. A word longer than width gets a line of its own.
// Blank text yields an empty, non-nil slice.
func Wrap(text string, width int) []string {
	lines := []string{}
	var (
		cur strings.Builder
		n   int
	)
	for _, word := range strings.Fields(text) {
		w := utf8.RuneCountInString(word)
		if n > 0 && n+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += w
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
