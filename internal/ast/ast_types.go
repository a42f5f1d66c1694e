package ast

// NamedType is a type reference, possibly applied: `Int`, `Option<a>`.
// Lowercase names refer to the enclosing declaration's type parameters.
type NamedType struct {
	Sp   Span
	Name string
	Args []TypeExpr
}

func (t *NamedType) Span() Span    { return t.Sp }
func (t *NamedType) typeExprNode() {}

// FunctionTypeExpr is `(params) -> ret`.
type FunctionTypeExpr struct {
	Sp     Span
	Params []TypeExpr
	Return TypeExpr
}

func (t *FunctionTypeExpr) Span() Span    { return t.Sp }
func (t *FunctionTypeExpr) typeExprNode() {}

// TupleTypeExpr is `(a, b, ...)`.
type TupleTypeExpr struct {
	Sp       Span
	Elements []TypeExpr
}

func (t *TupleTypeExpr) Span() Span    { return t.Sp }
func (t *TupleTypeExpr) typeExprNode() {}
