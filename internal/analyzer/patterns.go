package analyzer

import (
	"sort"
	"strings"

	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/diagnostics"
	"github.com/snow-lang/snow/internal/symbols"
	"github.com/snow-lang/snow/internal/typesystem"
)

// inferPattern checks a pattern against the type it must match, binding
// pattern variables into table. Constructor patterns resolve through the
// same environment lookup as construction sites.
func (w *walker) inferPattern(pat ast.Pattern, expected typesystem.Type, table *symbols.SymbolTable) *diagnostics.Diagnostic {
	w.stats.Patterns++
	w.typeMap[pat] = expected

	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return nil

	case *ast.IdentifierPattern:
		// A bare name that resolves to a nullary constructor matches that
		// constructor; anything else binds a fresh variable.
		if table.IsNullaryConstructor(p.Name) {
			scheme, _ := table.ResolveConstructor(p.Name)
			inst := w.ctx.Instantiate(scheme)
			return w.unify(expected, inst, p.Span())
		}
		table.Define(p.Name, typesystem.Mono(expected), p)
		return nil

	case *ast.LiteralPattern:
		return w.unify(expected, literalType(p.Kind), p.Span())

	case *ast.TuplePattern:
		elems := make([]typesystem.Type, len(p.Elements))
		for i := range p.Elements {
			elems[i] = w.ctx.FreshVar()
		}
		if err := w.unify(expected, typesystem.TTuple{Elements: elems}, p.Span()); err != nil {
			return err
		}
		for i, sub := range p.Elements {
			if err := w.inferPattern(sub, elems[i], table); err != nil {
				return err
			}
		}
		return nil

	case *ast.ConstructorPattern:
		var scheme *typesystem.Scheme
		var ok bool
		if p.TypeName != "" {
			scheme, ok = table.ResolveQualifiedConstructor(p.TypeName, p.Name)
			if !ok {
				return diagnostics.New(diagnostics.ErrT004, p.Span(), symbols.QualifiedName(p.TypeName, p.Name))
			}
		} else {
			scheme, ok = table.ResolveConstructor(p.Name)
			if !ok {
				return diagnostics.New(diagnostics.ErrT004, p.Span(), p.Name)
			}
		}

		inst := w.ctx.Instantiate(scheme)
		fn, isFunc := inst.(typesystem.TFunc)
		if !isFunc {
			// Nullary constructor.
			if len(p.Args) != 0 {
				return diagnostics.New(diagnostics.ErrT005, p.Span(), 0, len(p.Args))
			}
			return w.unify(expected, inst, p.Span())
		}
		if len(p.Args) != len(fn.Params) {
			return diagnostics.New(diagnostics.ErrT005, p.Span(), len(fn.Params), len(p.Args))
		}
		if err := w.unify(expected, fn.ReturnType, p.Span()); err != nil {
			return err
		}
		for i, sub := range p.Args {
			if err := w.inferPattern(sub, fn.Params[i], table); err != nil {
				return err
			}
		}
		return nil

	case *ast.OrPattern:
		// Every alternative matches the same type and must bind the same
		// names. Later alternatives re-define the shared bindings, which is
		// harmless: the types all unify against the same expected type.
		var firstNames []string
		for i, alt := range p.Alternatives {
			if err := w.inferPattern(alt, expected, table); err != nil {
				return err
			}
			names := collectBindings(alt, table)
			sort.Strings(names)
			if i == 0 {
				firstNames = names
				continue
			}
			if !equalNames(firstNames, names) {
				return diagnostics.New(diagnostics.ErrT006, alt.Span(),
					strings.Join(firstNames, ", "), strings.Join(names, ", "))
			}
		}
		return nil

	case *ast.AsPattern:
		if err := w.inferPattern(p.Pattern, expected, table); err != nil {
			return err
		}
		table.Define(p.Name, typesystem.Mono(expected), p)
		return nil
	}

	return diagnostics.New(diagnostics.ErrT003, pat.Span(), "pattern")
}

// collectBindings returns the names a pattern binds. An identifier that
// resolves to a nullary constructor binds nothing.
func collectBindings(pat ast.Pattern, table *symbols.SymbolTable) []string {
	switch p := pat.(type) {
	case *ast.IdentifierPattern:
		if table.IsNullaryConstructor(p.Name) {
			return nil
		}
		return []string{p.Name}
	case *ast.TuplePattern:
		var names []string
		for _, e := range p.Elements {
			names = append(names, collectBindings(e, table)...)
		}
		return names
	case *ast.ConstructorPattern:
		var names []string
		for _, a := range p.Args {
			names = append(names, collectBindings(a, table)...)
		}
		return names
	case *ast.OrPattern:
		if len(p.Alternatives) == 0 {
			return nil
		}
		// Alternatives bind the same set; checked during inference.
		return collectBindings(p.Alternatives[0], table)
	case *ast.AsPattern:
		return append(collectBindings(p.Pattern, table), p.Name)
	}
	return nil
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// toAbstract lowers a syntactic pattern to the abstract form the usefulness
// algorithm consumes. Binding structure is erased: identifiers and as-names
// become wildcards, nullary constructor identifiers become constructors,
// tuples become the anonymous single-constructor form.
func (w *walker) toAbstract(pat ast.Pattern, table *symbols.SymbolTable) absPat {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return wildcardPat{}

	case *ast.IdentifierPattern:
		if table.IsNullaryConstructor(p.Name) {
			return constructorPat{name: p.Name}
		}
		return wildcardPat{}

	case *ast.LiteralPattern:
		return literalPat{value: p.Value, kind: p.Kind}

	case *ast.TuplePattern:
		args := make([]absPat, len(p.Elements))
		for i, e := range p.Elements {
			args[i] = w.toAbstract(e, table)
		}
		return constructorPat{name: tupleCtorName, args: args}

	case *ast.ConstructorPattern:
		args := make([]absPat, len(p.Args))
		for i, a := range p.Args {
			args[i] = w.toAbstract(a, table)
		}
		return constructorPat{name: p.Name, args: args}

	case *ast.OrPattern:
		alts := make([]absPat, len(p.Alternatives))
		for i, a := range p.Alternatives {
			alts[i] = w.toAbstract(a, table)
		}
		return orPat{alternatives: alts}

	case *ast.AsPattern:
		return w.toAbstract(p.Pattern, table)
	}
	return wildcardPat{}
}
