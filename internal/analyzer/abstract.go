package analyzer

import (
	"strings"

	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/config"
	"github.com/snow-lang/snow/internal/symbols"
	"github.com/snow-lang/snow/internal/typesystem"
)

// tupleCtorName is the anonymous constructor of the single-variant product
// form tuples lower to.
const tupleCtorName = "(tuple)"

// absPat is the binding-free pattern form the usefulness algorithm works on.
type absPat interface {
	String() string
	absPattern()
}

type wildcardPat struct{}

func (wildcardPat) String() string { return "_" }
func (wildcardPat) absPattern()    {}

// literalPat matches one literal value; it behaves as a zero-arity
// constructor keyed by its source text.
type literalPat struct {
	value string
	kind  ast.LiteralKind
}

func (p literalPat) String() string { return p.value }
func (p literalPat) absPattern()    {}

type constructorPat struct {
	name string
	args []absPat
}

func (p constructorPat) String() string {
	if p.name == tupleCtorName {
		parts := make([]string, len(p.args))
		for i, a := range p.args {
			parts[i] = a.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	if len(p.args) == 0 {
		return p.name
	}
	parts := make([]string, len(p.args))
	for i, a := range p.args {
		parts[i] = a.String()
	}
	return p.name + "(" + strings.Join(parts, ", ") + ")"
}
func (p constructorPat) absPattern() {}

type orPat struct {
	alternatives []absPat
}

func (p orPat) String() string {
	parts := make([]string, len(p.alternatives))
	for i, a := range p.alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}
func (p orPat) absPattern() {}

// headName returns the constructor key of a specialized head, or "" for
// wildcards. Or-patterns are expanded before heads are inspected.
func headName(p absPat) string {
	switch h := p.(type) {
	case constructorPat:
		return h.name
	case literalPat:
		return h.value
	}
	return ""
}

// typeInfoKind classifies what the checker knows about a column's type.
type typeInfoKind int

const (
	// infoInfinite marks types whose value space cannot be enumerated
	// (numbers, strings, functions, unresolved variables) or structure
	// past the depth limit. Only a wildcard completes such a column.
	infoInfinite typeInfoKind = iota
	infoBool
	infoSum
)

// constructorSig is one constructor of a column's signature.
type constructorSig struct {
	name  string
	arity int
}

// typeInfo carries the complete constructor signature of one pattern-matrix
// column, with per-variant instantiated field types for specialization.
type typeInfo struct {
	kind       typeInfoKind
	typeName   string
	variants   []constructorSig
	fieldTypes map[string][]typesystem.Type
	depth      int
}

// matchChecker runs exhaustiveness and redundancy analysis for one
// pattern-bearing construct.
type matchChecker struct {
	ctx   *typesystem.InferContext
	reg   *symbols.Registry
	limit int
}

func newMatchChecker(ctx *typesystem.InferContext, reg *symbols.Registry, limit int) *matchChecker {
	return &matchChecker{ctx: ctx, reg: reg, limit: limit}
}

// typeInfoFor derives the constructor signature of a column at the given
// specialization depth. Booleans are modeled as a closed two-constructor
// type; tuples as an anonymous single-constructor type.
func (c *matchChecker) typeInfoFor(t typesystem.Type, depth int) typeInfo {
	if depth >= c.limit {
		return typeInfo{kind: infoInfinite, depth: depth}
	}

	resolved := c.ctx.Resolve(t)

	var typeName string
	var typeArgs []typesystem.Type
	switch rt := resolved.(type) {
	case typesystem.TCon:
		typeName = rt.Name
	case typesystem.TApp:
		if con, ok := rt.Constructor.(typesystem.TCon); ok {
			typeName = con.Name
			typeArgs = rt.Args
		}
	case typesystem.TTuple:
		n := len(rt.Elements)
		return typeInfo{
			kind:       infoSum,
			typeName:   tupleCtorName,
			variants:   []constructorSig{{name: tupleCtorName, arity: n}},
			fieldTypes: map[string][]typesystem.Type{tupleCtorName: rt.Elements},
			depth:      depth,
		}
	default:
		return typeInfo{kind: infoInfinite, depth: depth}
	}

	if typeName == config.BoolTypeName {
		return typeInfo{
			kind:     infoBool,
			typeName: typeName,
			variants: []constructorSig{
				{name: config.TrueCtorName},
				{name: config.FalseCtorName},
			},
			depth: depth,
		}
	}

	def, ok := c.reg.SumType(typeName)
	if !ok {
		return typeInfo{kind: infoInfinite, typeName: typeName, depth: depth}
	}

	info := typeInfo{
		kind:       infoSum,
		typeName:   typeName,
		fieldTypes: make(map[string][]typesystem.Type, len(def.Variants)),
		depth:      depth,
	}
	for _, v := range def.Variants {
		info.variants = append(info.variants, constructorSig{name: v.Name, arity: v.Arity()})
		fts, _ := def.FieldTypes(v.Name, typeArgs)
		info.fieldTypes[v.Name] = fts
	}
	return info
}

// subInfos derives the column infos for a constructor's fields, one level
// deeper than the parent column.
func (c *matchChecker) subInfos(col typeInfo, sig constructorSig) []typeInfo {
	if sig.arity == 0 {
		return nil
	}
	fts := col.fieldTypes[sig.name]
	infos := make([]typeInfo, sig.arity)
	for i := range infos {
		if i < len(fts) {
			infos[i] = c.typeInfoFor(fts[i], col.depth+1)
		} else {
			infos[i] = typeInfo{kind: infoInfinite, depth: col.depth + 1}
		}
	}
	return infos
}

// matrix is a pattern matrix with per-column type information.
type matrix struct {
	rows [][]absPat
	cols []typeInfo
}

// expandOrRows rewrites every row whose head is an or-pattern into one row
// per alternative, preserving order.
func expandOrRows(rows [][]absPat) [][]absPat {
	out := make([][]absPat, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			out = append(out, row)
			continue
		}
		if op, ok := row[0].(orPat); ok {
			for _, alt := range op.alternatives {
				expanded := append([]absPat{alt}, row[1:]...)
				out = append(out, expandOrRows([][]absPat{expanded})...)
			}
			continue
		}
		out = append(out, row)
	}
	return out
}

// specialize filters the matrix to rows compatible with the given
// constructor and unpacks its arguments into leading columns.
func (c *matchChecker) specialize(m matrix, sig constructorSig) matrix {
	sub := c.subInfos(m.cols[0], sig)
	cols := append(append([]typeInfo{}, sub...), m.cols[1:]...)

	var rows [][]absPat
	for _, row := range expandOrRows(m.rows) {
		head := row[0]
		switch h := head.(type) {
		case wildcardPat:
			padded := make([]absPat, 0, sig.arity+len(row)-1)
			for i := 0; i < sig.arity; i++ {
				padded = append(padded, wildcardPat{})
			}
			rows = append(rows, append(padded, row[1:]...))
		case constructorPat:
			if h.name == sig.name {
				rows = append(rows, append(append([]absPat{}, h.args...), row[1:]...))
			}
		case literalPat:
			if h.value == sig.name {
				rows = append(rows, append([]absPat{}, row[1:]...))
			}
		}
	}
	return matrix{rows: rows, cols: cols}
}

// defaultMatrix keeps only rows whose head is a wildcard, dropping the first
// column.
func defaultMatrix(m matrix) matrix {
	var rows [][]absPat
	for _, row := range expandOrRows(m.rows) {
		if _, ok := row[0].(wildcardPat); ok {
			rows = append(rows, append([]absPat{}, row[1:]...))
		}
	}
	return matrix{rows: rows, cols: append([]typeInfo{}, m.cols[1:]...)}
}

// headConstructors collects the constructor names present at the head of the
// matrix's rows.
func headConstructors(m matrix) map[string]bool {
	heads := make(map[string]bool)
	for _, row := range expandOrRows(m.rows) {
		if len(row) == 0 {
			continue
		}
		if name := headName(row[0]); name != "" {
			heads[name] = true
		}
	}
	return heads
}

// signatureComplete reports whether the head constructors cover every
// constructor of the column's type. Infinite columns are never complete.
func signatureComplete(col typeInfo, heads map[string]bool) bool {
	if col.kind == infoInfinite || len(col.variants) == 0 {
		return false
	}
	for _, v := range col.variants {
		if !heads[v.name] {
			return false
		}
	}
	return true
}
