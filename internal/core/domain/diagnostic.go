package domain

import (
	"fmt"
	"strings"
)

// Severity is the channel a diagnostic is reported on.
type Severity int

const (
	// SeverityMessage is informational output.
	SeverityMessage Severity = iota
	// SeverityWarning does not fail the pass.
	SeverityWarning
	// SeverityError fails the pass.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "message"
	}
}

// Diagnostic is one entry reported to the build host.
type Diagnostic struct {
	Severity    Severity
	Message     string
	Subcategory string
	Code        string
	HelpKeyword string
	File        string
	Line        int
	Column      int
	EndLine     int
	EndColumn   int
}

// String renders the diagnostic in the conventional "file(line,col): severity code: message" form.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			if d.Column > 0 {
				fmt.Fprintf(&b, "(%d,%d)", d.Line, d.Column)
			} else {
				fmt.Fprintf(&b, "(%d)", d.Line)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	if d.Code != "" {
		b.WriteString(" " + d.Code)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}
