// Package emitutil holds the pieces the language emitters share: an indenting line writer and
// a type namer that decides between short and qualified names.
package emitutil

import (
	"fmt"
	"strings"
)

// Writer accumulates indented source lines.
type Writer struct {
	b      strings.Builder
	indent int
	unit   string
}

// NewWriter creates a writer indenting with unit.
func NewWriter(unit string) *Writer {
	return &Writer{unit: unit}
}

// Line writes one formatted line at the current indentation. An empty format writes a blank line.
func (w *Writer) Line(format string, args ...any) {
	if format == "" {
		w.b.WriteByte('\n')
		return
	}
	w.b.WriteString(strings.Repeat(w.unit, w.indent))
	if len(args) == 0 {
		w.b.WriteString(format)
	} else {
		fmt.Fprintf(&w.b, format, args...)
	}
	w.b.WriteByte('\n')
}

// In increases the indentation.
func (w *Writer) In() { w.indent++ }

// Out decreases the indentation.
func (w *Writer) Out() {
	if w.indent > 0 {
		w.indent--
	}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int { return w.b.Len() }

// String returns the accumulated text.
func (w *Writer) String() string { return w.b.String() }
