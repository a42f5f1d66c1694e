package ast

// Position is a line/column location in a source file (1-based).
type Position struct {
	Line   int
	Column int
}

// Span is a half-open source range used for diagnostics.
type Span struct {
	Start Position
	End   Position
}

// Node is the base interface for all syntax tree nodes. The checker never
// mutates nodes; the tree is produced by the parser and shared read-only.
type Node interface {
	Span() Span
}

// Declaration is a Node that appears at the top level of a compilation unit
// or inside a block.
type Declaration interface {
	Node
	declNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Pattern is a Node that appears in match arms and destructuring bindings.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is a syntactic type annotation (e.g. a variant field type).
type TypeExpr interface {
	Node
	typeExprNode()
}

// Program is the root node of a compilation unit.
type Program struct {
	File         string
	Declarations []Declaration
}

func (p *Program) Span() Span {
	if len(p.Declarations) == 0 {
		return Span{}
	}
	return Span{
		Start: p.Declarations[0].Span().Start,
		End:   p.Declarations[len(p.Declarations)-1].Span().End,
	}
}

// Param is a single function or closure parameter.
type Param struct {
	Sp   Span
	Name string
}

func (p *Param) Span() Span { return p.Sp }

// FunctionDeclaration is a named, possibly recursive function definition.
// fn name(params) do body end
type FunctionDeclaration struct {
	Sp     Span
	Name   string
	Params []*Param
	Body   Expression
}

func (d *FunctionDeclaration) Span() Span { return d.Sp }
func (d *FunctionDeclaration) declNode()  {}

// LetDeclaration is a let binding. Exactly one of Name or Pattern is set:
// `let x = expr` binds a name, `let (a, b) = expr` destructures.
type LetDeclaration struct {
	Sp      Span
	Name    string
	Pattern Pattern
	Value   Expression
}

func (d *LetDeclaration) Span() Span { return d.Sp }
func (d *LetDeclaration) declNode()  {}

// SumTypeDeclaration declares an algebraic (sum) type with its variants.
// type Shape<a> = Circle(a) | Point
type SumTypeDeclaration struct {
	Sp         Span
	Name       string
	TypeParams []string
	Variants   []*VariantDecl
}

func (d *SumTypeDeclaration) Span() Span { return d.Sp }
func (d *SumTypeDeclaration) declNode()  {}

// VariantDecl is a single variant of a sum type declaration.
type VariantDecl struct {
	Sp     Span
	Name   string
	Fields []*FieldDecl
}

func (v *VariantDecl) Span() Span { return v.Sp }

// FieldDecl is a positional or named field of a variant or struct.
// Name is empty for positional fields.
type FieldDecl struct {
	Sp   Span
	Name string
	Type TypeExpr
}

func (f *FieldDecl) Span() Span { return f.Sp }

// StructDeclaration declares a nominal record type with named fields.
type StructDeclaration struct {
	Sp         Span
	Name       string
	TypeParams []string
	Fields     []*FieldDecl
}

func (d *StructDeclaration) Span() Span { return d.Sp }
func (d *StructDeclaration) declNode()  {}

// ExpressionStatement wraps a bare expression in declaration position.
type ExpressionStatement struct {
	Expression Expression
}

func (d *ExpressionStatement) Span() Span { return d.Expression.Span() }
func (d *ExpressionStatement) declNode()  {}
