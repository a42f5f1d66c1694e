package ast

// WildcardPattern matches anything and binds nothing: `_`.
type WildcardPattern struct {
	Sp Span
}

func (p *WildcardPattern) Span() Span   { return p.Sp }
func (p *WildcardPattern) patternNode() {}

// IdentifierPattern is a bare name in pattern position. It binds a fresh
// variable unless the name resolves to a registered nullary constructor,
// in which case it matches that constructor.
type IdentifierPattern struct {
	Sp   Span
	Name string
}

func (p *IdentifierPattern) Span() Span   { return p.Sp }
func (p *IdentifierPattern) patternNode() {}

// LiteralPattern matches a specific literal value.
type LiteralPattern struct {
	Sp    Span
	Kind  LiteralKind
	Value string
}

func (p *LiteralPattern) Span() Span   { return p.Sp }
func (p *LiteralPattern) patternNode() {}

// TuplePattern destructures a tuple element-wise.
type TuplePattern struct {
	Sp       Span
	Elements []Pattern
}

func (p *TuplePattern) Span() Span   { return p.Sp }
func (p *TuplePattern) patternNode() {}

// ConstructorPattern matches a variant, optionally type-qualified:
// `Circle(r)` or `Shape.Circle(r)`. TypeName is empty when unqualified.
type ConstructorPattern struct {
	Sp       Span
	TypeName string
	Name     string
	Args     []Pattern
}

func (p *ConstructorPattern) Span() Span   { return p.Sp }
func (p *ConstructorPattern) patternNode() {}

// OrPattern matches if any alternative matches: `A(x) | B(x)`. Every
// alternative must bind the same set of names.
type OrPattern struct {
	Sp           Span
	Alternatives []Pattern
}

func (p *OrPattern) Span() Span   { return p.Sp }
func (p *OrPattern) patternNode() {}

// AsPattern binds the whole matched value while also matching a
// sub-pattern: `Circle(r) as c`.
type AsPattern struct {
	Sp      Span
	Pattern Pattern
	Name    string
}

func (p *AsPattern) Span() Span   { return p.Sp }
func (p *AsPattern) patternNode() {}
