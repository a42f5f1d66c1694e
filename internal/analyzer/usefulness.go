package analyzer

import (
	"strings"

	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/diagnostics"
	"github.com/snow-lang/snow/internal/typesystem"
)

// matchRow is one typed match arm lowered to abstract form.
type matchRow struct {
	pattern absPat
	guarded bool
	span    ast.Span
}

// isUseful reports whether some value matches row but no row of m.
// Maranget's algorithm U.
func (c *matchChecker) isUseful(m matrix, row []absPat) bool {
	if len(row) == 0 {
		return len(m.rows) == 0
	}

	head, rest := row[0], row[1:]
	switch h := head.(type) {
	case constructorPat:
		sig := constructorSig{name: h.name, arity: len(h.args)}
		sm := c.specialize(m, sig)
		return c.isUseful(sm, append(append([]absPat{}, h.args...), rest...))

	case literalPat:
		sig := constructorSig{name: h.value}
		return c.isUseful(c.specialize(m, sig), append([]absPat{}, rest...))

	case orPat:
		for _, alt := range h.alternatives {
			if c.isUseful(m, append([]absPat{alt}, rest...)) {
				return true
			}
		}
		return false

	default: // wildcard
		col := m.cols[0]
		if signatureComplete(col, headConstructors(m)) {
			for _, sig := range col.variants {
				sm := c.specialize(m, sig)
				wrow := make([]absPat, 0, sig.arity+len(rest))
				for i := 0; i < sig.arity; i++ {
					wrow = append(wrow, wildcardPat{})
				}
				if c.isUseful(sm, append(wrow, rest...)) {
					return true
				}
			}
			return false
		}
		return c.isUseful(defaultMatrix(m), append([]absPat{}, rest...))
	}
}

// makeWitness rebuilds a concrete example pattern for one constructor head.
func makeWitness(col typeInfo, sig constructorSig, args []absPat) absPat {
	if col.kind == infoBool {
		return literalPat{value: sig.name, kind: ast.LitBool}
	}
	return constructorPat{name: sig.name, args: args}
}

// missing returns example rows no row of the matrix covers. An empty result
// means the matrix is exhaustive.
func (c *matchChecker) missing(m matrix) [][]absPat {
	if len(m.cols) == 0 {
		if len(m.rows) == 0 {
			return [][]absPat{{}}
		}
		return nil
	}

	col := m.cols[0]
	heads := headConstructors(m)

	if signatureComplete(col, heads) {
		var out [][]absPat
		for _, sig := range col.variants {
			sm := c.specialize(m, sig)
			for _, sub := range c.missing(sm) {
				args := append([]absPat{}, sub[:sig.arity]...)
				witness := makeWitness(col, sig, args)
				out = append(out, append([]absPat{witness}, sub[sig.arity:]...))
			}
		}
		return out
	}

	d := c.missing(defaultMatrix(m))
	if len(d) == 0 {
		return nil
	}

	// Incomplete signature: each absent constructor is a witness head; for
	// infinite columns a wildcard stands in.
	var prefixes []absPat
	if col.kind != infoInfinite {
		for _, sig := range col.variants {
			if heads[sig.name] {
				continue
			}
			args := make([]absPat, sig.arity)
			for i := range args {
				args[i] = wildcardPat{}
			}
			prefixes = append(prefixes, makeWitness(col, sig, args))
		}
	}
	if len(prefixes) == 0 {
		prefixes = []absPat{wildcardPat{}}
	}

	var out [][]absPat
	for _, drow := range d {
		for _, p := range prefixes {
			out = append(out, append([]absPat{p}, drow...))
		}
	}
	return out
}

// checkExhaustive verifies the unguarded arms cover every value of the
// scrutinee's type. Guarded arms contribute nothing: a guard cannot be
// assumed to match.
func (c *matchChecker) checkExhaustive(rows []matchRow, scrutTy typesystem.Type, span ast.Span) *diagnostics.Diagnostic {
	m := matrix{cols: []typeInfo{c.typeInfoFor(scrutTy, 0)}}
	for _, r := range rows {
		if r.guarded {
			continue
		}
		m.rows = append(m.rows, []absPat{r.pattern})
	}

	witnesses := c.missing(m)
	if len(witnesses) == 0 {
		return nil
	}

	rendered := make([]string, len(witnesses))
	for i, wrow := range witnesses {
		rendered[i] = wrow[0].String()
	}
	return diagnostics.New(diagnostics.ErrT007, span,
		c.ctx.Resolve(scrutTy), strings.Join(rendered, ", ")).
		WithWitnesses(rendered)
}

// checkRedundant tests every arm, guarded arms included, against the arms
// before it. Redundant arms are warnings keyed by 1-based position; they are
// reported, never removed.
func (c *matchChecker) checkRedundant(rows []matchRow, scrutTy typesystem.Type) []*diagnostics.Diagnostic {
	m := matrix{cols: []typeInfo{c.typeInfoFor(scrutTy, 0)}}

	var warnings []*diagnostics.Diagnostic
	for i, r := range rows {
		if !c.isUseful(m, []absPat{r.pattern}) {
			d := diagnostics.NewWarning(diagnostics.WarnW001, r.span, i+1)
			d.ArmIndex = i + 1
			warnings = append(warnings, d)
		}
		m.rows = append(m.rows, []absPat{r.pattern})
	}
	return warnings
}
