package ast

// LiteralKind discriminates literal expressions and literal patterns.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
	LitUnit
)

func (k LiteralKind) String() string {
	switch k {
	case LitInt:
		return "Int"
	case LitFloat:
		return "Float"
	case LitString:
		return "String"
	case LitChar:
		return "Char"
	case LitBool:
		return "Bool"
	case LitUnit:
		return "Unit"
	}
	return "?"
}

// Literal is a literal expression. Value holds the source text of the
// literal ("42", "3.14", "true", ...).
type Literal struct {
	Sp    Span
	Kind  LiteralKind
	Value string
}

func (e *Literal) Span() Span { return e.Sp }
func (e *Literal) exprNode()  {}

// Identifier is a name reference: a variable, function, or constructor.
type Identifier struct {
	Sp   Span
	Name string
}

func (e *Identifier) Span() Span { return e.Sp }
func (e *Identifier) exprNode()  {}

// FieldAccess is attribute-style access: `expr.field`. When the receiver is
// an identifier naming a registered type, this is qualified constructor
// access (Shape.Circle); otherwise it is struct field access.
type FieldAccess struct {
	Sp       Span
	Receiver Expression
	Field    string
}

func (e *FieldAccess) Span() Span { return e.Sp }
func (e *FieldAccess) exprNode()  {}

// CallExpression is `callee(args...)` — an ordinary call or a value
// construction, disambiguated by the checker via the symbol table.
type CallExpression struct {
	Sp     Span
	Callee Expression
	Args   []Expression
}

func (e *CallExpression) Span() Span { return e.Sp }
func (e *CallExpression) exprNode()  {}

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	Sp    Span
	Op    string
	Left  Expression
	Right Expression
}

func (e *BinaryExpression) Span() Span { return e.Sp }
func (e *BinaryExpression) exprNode()  {}

// UnaryExpression is `op operand`.
type UnaryExpression struct {
	Sp      Span
	Op      string
	Operand Expression
}

func (e *UnaryExpression) Span() Span { return e.Sp }
func (e *UnaryExpression) exprNode()  {}

// TupleExpression is `(a, b, ...)` with two or more elements.
type TupleExpression struct {
	Sp       Span
	Elements []Expression
}

func (e *TupleExpression) Span() Span { return e.Sp }
func (e *TupleExpression) exprNode()  {}

// IfExpression is `if cond then ... else ... end`. Else may be nil.
type IfExpression struct {
	Sp        Span
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *IfExpression) Span() Span { return e.Sp }
func (e *IfExpression) exprNode()  {}

// BlockExpression is a sequence of declarations followed by a tail
// expression; its type is the tail's type (Unit when Tail is nil).
type BlockExpression struct {
	Sp           Span
	Declarations []Declaration
	Tail         Expression
}

func (e *BlockExpression) Span() Span { return e.Sp }
func (e *BlockExpression) exprNode()  {}

// ClosureExpression is an anonymous function literal.
type ClosureExpression struct {
	Sp     Span
	Params []*Param
	Body   Expression
}

func (e *ClosureExpression) Span() Span { return e.Sp }
func (e *ClosureExpression) exprNode()  {}

// MatchArm is one arm of a match expression. Guard may be nil.
type MatchArm struct {
	Sp      Span
	Pattern Pattern
	Guard   Expression
	Body    Expression
}

func (a *MatchArm) Span() Span { return a.Sp }

// MatchExpression is `match scrutinee { arms... }`.
type MatchExpression struct {
	Sp        Span
	Scrutinee Expression
	Arms      []*MatchArm
}

func (e *MatchExpression) Span() Span { return e.Sp }
func (e *MatchExpression) exprNode()  {}
