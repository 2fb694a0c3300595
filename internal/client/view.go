package client

import (
	"fmt"
	"io"
	"strings"
)

const (
	viewTitle    = "Todo List"
	viewLoading  = "Loading tasks..."
	viewEmpty    = "No tasks yet. Add some!"
	viewErrorTag = "! "
)

// Render writes the list derived from s. Numbers start at 1 and follow the
// order of s.Tasks.
func Render(w io.Writer, s State) {
	fmt.Fprintln(w, viewTitle)
	if s.Err != "" {
		fmt.Fprintln(w, viewErrorTag+s.Err)
	}

	switch {
	case s.Loading:
		fmt.Fprintln(w, viewLoading)
	case len(s.Tasks) == 0:
		fmt.Fprintln(w, viewEmpty)
	default:
		for i, t := range s.Tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			fmt.Fprintf(w, "%4d  [%s] %s\n", i+1, mark, normalizeText(t.Text))
		}
	}
}

// normalizeText keeps one task on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
