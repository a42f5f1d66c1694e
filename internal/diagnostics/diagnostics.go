package diagnostics

import (
	"fmt"

	"github.com/snow-lang/snow/internal/ast"
)

// Severity separates hard errors from warnings. Warnings never block
// producing typed output.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Related is a secondary span attached to a diagnostic, e.g. the location
// where a conflicting type was inferred.
type Related struct {
	Span    ast.Span
	Message string
}

// Diagnostic is a single error or warning. It implements error so inference
// code can return it directly.
type Diagnostic struct {
	Code     ErrorCode
	Severity Severity
	Message  string
	Span     ast.Span
	Related  []Related
	// Witnesses holds example uncovered patterns for non-exhaustiveness
	// diagnostics (T007), already rendered as source-like strings.
	Witnesses []string
	// ArmIndex is the redundant arm position for W001.
	ArmIndex int
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// New creates a hard-error diagnostic from the code's message template.
func New(code ErrorCode, span ast.Span, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  render(code, args),
		Span:     span,
	}
}

// NewWarning creates a warning diagnostic from the code's message template.
func NewWarning(code ErrorCode, span ast.Span, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Message:  render(code, args),
		Span:     span,
	}
}

// WithRelated attaches a secondary span and returns the diagnostic for
// chaining.
func (d *Diagnostic) WithRelated(span ast.Span, msg string) *Diagnostic {
	d.Related = append(d.Related, Related{Span: span, Message: msg})
	return d
}

// WithWitnesses attaches missing-pattern examples (T007).
func (d *Diagnostic) WithWitnesses(ws []string) *Diagnostic {
	d.Witnesses = ws
	return d
}

func render(code ErrorCode, args []interface{}) string {
	if tmpl, ok := messages[code]; ok {
		return fmt.Sprintf(tmpl, args...)
	}
	return fmt.Sprint(args...)
}
