package logger

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Metadata keys lifted from zerr errors into diagnostic fields.
const (
	MetaCode        = "code"
	MetaSubcategory = "subcategory"
	MetaHelpKeyword = "help_keyword"
	MetaFile        = "file"
	MetaLine        = "line"
	MetaColumn      = "column"
	MetaEndLine     = "end_line"
	MetaEndColumn   = "end_column"
)

var _ ports.BuildLog = (*PassLog)(nil)

// PassLog records the diagnostics of one generation pass and forwards them to a process logger.
type PassLog struct {
	id          string
	base        ports.Logger
	mu          sync.Mutex
	diagnostics []domain.Diagnostic
	errors      int
}

// NewPassLog creates a pass log forwarding to base. A nil base only records.
func NewPassLog(base ports.Logger) *PassLog {
	return &PassLog{id: uuid.NewString(), base: base}
}

// ID returns the pass identifier attached to forwarded entries.
func (p *PassLog) ID() string {
	return p.id
}

// Info records an informational message.
func (p *PassLog) Info(msg string) {
	p.Report(domain.Diagnostic{Severity: domain.SeverityMessage, Message: msg})
}

// Warn records a warning.
func (p *PassLog) Warn(msg string) {
	p.Report(domain.Diagnostic{Severity: domain.SeverityWarning, Message: msg})
}

// Error records an error. Location and code metadata attached with zerr.With become
// diagnostic fields.
func (p *PassLog) Error(err error) {
	if err == nil {
		return
	}
	d := domain.Diagnostic{Severity: domain.SeverityError, Message: err.Error()}
	meta := ErrorMetadata(err)
	d.Code = metaString(meta, MetaCode)
	d.Subcategory = metaString(meta, MetaSubcategory)
	d.HelpKeyword = metaString(meta, MetaHelpKeyword)
	d.File = metaString(meta, MetaFile)
	d.Line = metaInt(meta, MetaLine)
	d.Column = metaInt(meta, MetaColumn)
	d.EndLine = metaInt(meta, MetaEndLine)
	d.EndColumn = metaInt(meta, MetaEndColumn)

	p.record(d)
	if p.base != nil {
		p.base.Error(zerr.With(zerr.Wrap(err, ""), "pass", p.id))
	}
}

// Report records a structured diagnostic.
func (p *PassLog) Report(d domain.Diagnostic) {
	p.record(d)
	if p.base == nil {
		return
	}
	switch d.Severity {
	case domain.SeverityError:
		p.base.Error(zerr.With(zerr.New(d.String()), "pass", p.id))
	case domain.SeverityWarning:
		p.base.Warn(d.String())
	default:
		p.base.Info(d.Message)
	}
}

func (p *PassLog) record(d domain.Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.diagnostics = append(p.diagnostics, d)
	if d.Severity == domain.SeverityError {
		p.errors++
	}
}

// HasLoggedErrors reports whether any error was recorded.
func (p *PassLog) HasLoggedErrors() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errors > 0
}

// Diagnostics returns a copy of the recorded entries.
func (p *PassLog) Diagnostics() []domain.Diagnostic {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Diagnostic, len(p.diagnostics))
	copy(out, p.diagnostics)
	return out
}

// Messages returns the recorded entries of one severity.
func (p *PassLog) Messages(s domain.Severity) []string {
	var out []string
	for _, d := range p.Diagnostics() {
		if d.Severity == s {
			out = append(out, d.Message)
		}
	}
	return out
}

func metaString(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func metaInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	default:
		return 0
	}
}
