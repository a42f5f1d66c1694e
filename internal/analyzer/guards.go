package analyzer

import (
	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/diagnostics"
)

// validateGuard restricts a match guard to a pure, decidable fragment:
// literals, bound names, comparisons, boolean connectives, and calls to
// allow-listed prelude functions. Anything richer would let a guard hide
// arbitrary effects from the usefulness analysis.
func (w *walker) validateGuard(expr ast.Expression) *diagnostics.Diagnostic {
	switch e := expr.(type) {
	case *ast.Literal:
		return nil

	case *ast.Identifier:
		return nil

	case *ast.FieldAccess:
		// Allows nullary qualified constructors like Ordering.Less in
		// comparisons; the receiver must itself be a plain name.
		if _, ok := e.Receiver.(*ast.Identifier); ok {
			return nil
		}
		return diagnostics.New(diagnostics.ErrT008, e.Span(), "field access on a computed value")

	case *ast.BinaryExpression:
		switch e.Op {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||", "and", "or", "+", "-", "*", "/", "%":
			if err := w.validateGuard(e.Left); err != nil {
				return err
			}
			return w.validateGuard(e.Right)
		}
		return diagnostics.New(diagnostics.ErrT008, e.Span(), "operator `"+e.Op+"` is not allowed in guards")

	case *ast.UnaryExpression:
		switch e.Op {
		case "!", "not", "-":
			return w.validateGuard(e.Operand)
		}
		return diagnostics.New(diagnostics.ErrT008, e.Span(), "operator `"+e.Op+"` is not allowed in guards")

	case *ast.CallExpression:
		callee, ok := e.Callee.(*ast.Identifier)
		if !ok {
			return diagnostics.New(diagnostics.ErrT008, e.Span(), "only named functions may be called in guards")
		}
		if !w.cfg.GuardAllowed(callee.Name) {
			return diagnostics.New(diagnostics.ErrT008, e.Span(), "function `"+callee.Name+"` is not allowed in guards")
		}
		for _, a := range e.Args {
			if err := w.validateGuard(a); err != nil {
				return err
			}
		}
		return nil

	case *ast.TupleExpression:
		// Grouping parentheses arrive as one-element tuples.
		if len(e.Elements) == 1 {
			return w.validateGuard(e.Elements[0])
		}
	}

	return diagnostics.New(diagnostics.ErrT008, expr.Span(), "expression form is not allowed in guards")
}
