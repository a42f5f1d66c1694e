package ast

import (
	"encoding/json"
	"fmt"
)

// The parser layer hands compilation units to the checker as JSON trees.
// Every node is an object with a "kind" discriminator and an optional "span"
// ({"line","col","endLine","endCol"}). DecodeProgram is the only entry
// point; malformed input fails with the path to the offending node.

type jsonSpan struct {
	Line    int `json:"line"`
	Col     int `json:"col"`
	EndLine int `json:"endLine"`
	EndCol  int `json:"endCol"`
}

func (s *jsonSpan) span() Span {
	if s == nil {
		return Span{}
	}
	return Span{
		Start: Position{Line: s.Line, Column: s.Col},
		End:   Position{Line: s.EndLine, Column: s.EndCol},
	}
}

type jsonNode struct {
	Kind string    `json:"kind"`
	Span *jsonSpan `json:"span"`

	// Shared fields; which ones apply depends on Kind.
	Name     string            `json:"name"`
	Value    string            `json:"value"`
	File     string            `json:"file"`
	Field    string            `json:"field"`
	Op       string            `json:"op"`
	TypeName string            `json:"type"`
	Params   []json.RawMessage `json:"params"`
	Args     []json.RawMessage `json:"args"`
	Decls    []json.RawMessage `json:"decls"`
	Elems    []json.RawMessage `json:"elems"`
	Alts     []json.RawMessage `json:"alts"`
	Variants []json.RawMessage `json:"variants"`
	Fields   []json.RawMessage `json:"fields"`
	Arms     []json.RawMessage `json:"arms"`
	Body     json.RawMessage   `json:"body"`
	Init     json.RawMessage   `json:"init"`
	Pattern  json.RawMessage   `json:"pattern"`
	Guard    json.RawMessage   `json:"guard"`
	Callee   json.RawMessage   `json:"callee"`
	Recv     json.RawMessage   `json:"recv"`
	Left     json.RawMessage   `json:"left"`
	Right    json.RawMessage   `json:"right"`
	Operand  json.RawMessage   `json:"operand"`
	Cond     json.RawMessage   `json:"cond"`
	Then     json.RawMessage   `json:"then"`
	Else     json.RawMessage   `json:"else"`
	Tail     json.RawMessage   `json:"tail"`
	Scrut    json.RawMessage   `json:"scrutinee"`
	Ret      json.RawMessage   `json:"ret"`
	TypeOf   json.RawMessage   `json:"fieldType"`
	StrList  []string          `json:"names"`
}

func decodeNode(raw json.RawMessage, path string) (*jsonNode, error) {
	var n jsonNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n.Kind == "" {
		return nil, fmt.Errorf("%s: missing kind", path)
	}
	return &n, nil
}

// DecodeProgram parses one serialized compilation unit.
func DecodeProgram(data []byte) (*Program, error) {
	n, err := decodeNode(data, "program")
	if err != nil {
		return nil, err
	}
	if n.Kind != "program" {
		return nil, fmt.Errorf("program: unexpected kind %q", n.Kind)
	}
	p := &Program{File: n.File}
	for i, raw := range n.Decls {
		d, err := decodeDecl(raw, fmt.Sprintf("decls[%d]", i))
		if err != nil {
			return nil, err
		}
		p.Declarations = append(p.Declarations, d)
	}
	return p, nil
}

func decodeDecl(raw json.RawMessage, path string) (Declaration, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "fn":
		params, err := decodeParams(n.Params, path)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(n.Body, path+".body")
		if err != nil {
			return nil, err
		}
		return &FunctionDeclaration{Sp: n.Span.span(), Name: n.Name, Params: params, Body: body}, nil

	case "let":
		value, err := decodeExpr(n.Init, path+".init")
		if err != nil {
			return nil, err
		}
		d := &LetDeclaration{Sp: n.Span.span(), Name: n.Name, Value: value}
		if len(n.Pattern) > 0 {
			pat, err := decodePattern(n.Pattern, path+".pattern")
			if err != nil {
				return nil, err
			}
			d.Pattern = pat
		}
		if d.Name == "" && d.Pattern == nil {
			return nil, fmt.Errorf("%s: let needs a name or a pattern", path)
		}
		return d, nil

	case "sum":
		d := &SumTypeDeclaration{Sp: n.Span.span(), Name: n.Name, TypeParams: n.StrList}
		for i, raw := range n.Variants {
			v, err := decodeVariant(raw, fmt.Sprintf("%s.variants[%d]", path, i))
			if err != nil {
				return nil, err
			}
			d.Variants = append(d.Variants, v)
		}
		return d, nil

	case "struct":
		d := &StructDeclaration{Sp: n.Span.span(), Name: n.Name, TypeParams: n.StrList}
		for i, raw := range n.Fields {
			f, err := decodeField(raw, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			d.Fields = append(d.Fields, f)
		}
		return d, nil

	case "expr":
		e, err := decodeExpr(n.Body, path+".body")
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Expression: e}, nil
	}
	return nil, fmt.Errorf("%s: unknown declaration kind %q", path, n.Kind)
}

func decodeVariant(raw json.RawMessage, path string) (*VariantDecl, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	v := &VariantDecl{Sp: n.Span.span(), Name: n.Name}
	for i, fraw := range n.Fields {
		f, err := decodeField(fraw, fmt.Sprintf("%s.fields[%d]", path, i))
		if err != nil {
			return nil, err
		}
		v.Fields = append(v.Fields, f)
	}
	return v, nil
}

func decodeField(raw json.RawMessage, path string) (*FieldDecl, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	ty, err := decodeTypeExpr(n.TypeOf, path+".fieldType")
	if err != nil {
		return nil, err
	}
	return &FieldDecl{Sp: n.Span.span(), Name: n.Name, Type: ty}, nil
}

func decodeParams(raws []json.RawMessage, path string) ([]*Param, error) {
	params := make([]*Param, len(raws))
	for i, raw := range raws {
		n, err := decodeNode(raw, fmt.Sprintf("%s.params[%d]", path, i))
		if err != nil {
			return nil, err
		}
		params[i] = &Param{Sp: n.Span.span(), Name: n.Name}
	}
	return params, nil
}

var literalKinds = map[string]LiteralKind{
	"int":    LitInt,
	"float":  LitFloat,
	"string": LitString,
	"char":   LitChar,
	"bool":   LitBool,
	"unit":   LitUnit,
}

func decodeExpr(raw json.RawMessage, path string) (Expression, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	if lk, ok := literalKinds[n.Kind]; ok {
		return &Literal{Sp: n.Span.span(), Kind: lk, Value: n.Value}, nil
	}

	switch n.Kind {
	case "ident":
		return &Identifier{Sp: n.Span.span(), Name: n.Name}, nil

	case "field":
		recv, err := decodeExpr(n.Recv, path+".recv")
		if err != nil {
			return nil, err
		}
		return &FieldAccess{Sp: n.Span.span(), Receiver: recv, Field: n.Field}, nil

	case "call":
		callee, err := decodeExpr(n.Callee, path+".callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args, path+".args")
		if err != nil {
			return nil, err
		}
		return &CallExpression{Sp: n.Span.span(), Callee: callee, Args: args}, nil

	case "binary":
		left, err := decodeExpr(n.Left, path+".left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right, path+".right")
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{Sp: n.Span.span(), Op: n.Op, Left: left, Right: right}, nil

	case "unary":
		operand, err := decodeExpr(n.Operand, path+".operand")
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{Sp: n.Span.span(), Op: n.Op, Operand: operand}, nil

	case "tuple":
		elems, err := decodeExprs(n.Elems, path+".elems")
		if err != nil {
			return nil, err
		}
		return &TupleExpression{Sp: n.Span.span(), Elements: elems}, nil

	case "if":
		cond, err := decodeExpr(n.Cond, path+".cond")
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(n.Then, path+".then")
		if err != nil {
			return nil, err
		}
		e := &IfExpression{Sp: n.Span.span(), Condition: cond, Then: then}
		if len(n.Else) > 0 {
			els, err := decodeExpr(n.Else, path+".else")
			if err != nil {
				return nil, err
			}
			e.Else = els
		}
		return e, nil

	case "block":
		e := &BlockExpression{Sp: n.Span.span()}
		for i, draw := range n.Decls {
			d, err := decodeDecl(draw, fmt.Sprintf("%s.decls[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e.Declarations = append(e.Declarations, d)
		}
		if len(n.Tail) > 0 {
			tail, err := decodeExpr(n.Tail, path+".tail")
			if err != nil {
				return nil, err
			}
			e.Tail = tail
		}
		return e, nil

	case "closure":
		params, err := decodeParams(n.Params, path)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(n.Body, path+".body")
		if err != nil {
			return nil, err
		}
		return &ClosureExpression{Sp: n.Span.span(), Params: params, Body: body}, nil

	case "match":
		scrut, err := decodeExpr(n.Scrut, path+".scrutinee")
		if err != nil {
			return nil, err
		}
		e := &MatchExpression{Sp: n.Span.span(), Scrutinee: scrut}
		for i, araw := range n.Arms {
			arm, err := decodeArm(araw, fmt.Sprintf("%s.arms[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e.Arms = append(e.Arms, arm)
		}
		return e, nil
	}
	return nil, fmt.Errorf("%s: unknown expression kind %q", path, n.Kind)
}

func decodeExprs(raws []json.RawMessage, path string) ([]Expression, error) {
	exprs := make([]Expression, len(raws))
	for i, raw := range raws {
		e, err := decodeExpr(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

func decodeArm(raw json.RawMessage, path string) (*MatchArm, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	pat, err := decodePattern(n.Pattern, path+".pattern")
	if err != nil {
		return nil, err
	}
	body, err := decodeExpr(n.Body, path+".body")
	if err != nil {
		return nil, err
	}
	arm := &MatchArm{Sp: n.Span.span(), Pattern: pat, Body: body}
	if len(n.Guard) > 0 {
		guard, err := decodeExpr(n.Guard, path+".guard")
		if err != nil {
			return nil, err
		}
		arm.Guard = guard
	}
	return arm, nil
}

func decodePattern(raw json.RawMessage, path string) (Pattern, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	if lk, ok := literalKinds[n.Kind]; ok {
		return &LiteralPattern{Sp: n.Span.span(), Kind: lk, Value: n.Value}, nil
	}

	switch n.Kind {
	case "wildcard":
		return &WildcardPattern{Sp: n.Span.span()}, nil

	case "bind":
		return &IdentifierPattern{Sp: n.Span.span(), Name: n.Name}, nil

	case "tuple":
		elems := make([]Pattern, len(n.Elems))
		for i, eraw := range n.Elems {
			p, err := decodePattern(eraw, fmt.Sprintf("%s.elems[%d]", path, i))
			if err != nil {
				return nil, err
			}
			elems[i] = p
		}
		return &TuplePattern{Sp: n.Span.span(), Elements: elems}, nil

	case "ctor":
		args := make([]Pattern, len(n.Args))
		for i, araw := range n.Args {
			p, err := decodePattern(araw, fmt.Sprintf("%s.args[%d]", path, i))
			if err != nil {
				return nil, err
			}
			args[i] = p
		}
		return &ConstructorPattern{Sp: n.Span.span(), TypeName: n.TypeName, Name: n.Name, Args: args}, nil

	case "or":
		alts := make([]Pattern, len(n.Alts))
		for i, araw := range n.Alts {
			p, err := decodePattern(araw, fmt.Sprintf("%s.alts[%d]", path, i))
			if err != nil {
				return nil, err
			}
			alts[i] = p
		}
		return &OrPattern{Sp: n.Span.span(), Alternatives: alts}, nil

	case "as":
		inner, err := decodePattern(n.Pattern, path+".pattern")
		if err != nil {
			return nil, err
		}
		return &AsPattern{Sp: n.Span.span(), Pattern: inner, Name: n.Name}, nil
	}
	return nil, fmt.Errorf("%s: unknown pattern kind %q", path, n.Kind)
}

func decodeTypeExpr(raw json.RawMessage, path string) (TypeExpr, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "named":
		t := &NamedType{Sp: n.Span.span(), Name: n.Name}
		for i, araw := range n.Args {
			a, err := decodeTypeExpr(araw, fmt.Sprintf("%s.args[%d]", path, i))
			if err != nil {
				return nil, err
			}
			t.Args = append(t.Args, a)
		}
		return t, nil

	case "fnType":
		t := &FunctionTypeExpr{Sp: n.Span.span()}
		for i, praw := range n.Params {
			p, err := decodeTypeExpr(praw, fmt.Sprintf("%s.params[%d]", path, i))
			if err != nil {
				return nil, err
			}
			t.Params = append(t.Params, p)
		}
		ret, err := decodeTypeExpr(n.Ret, path+".ret")
		if err != nil {
			return nil, err
		}
		t.Return = ret
		return t, nil

	case "tupleType":
		t := &TupleTypeExpr{Sp: n.Span.span()}
		for i, eraw := range n.Elems {
			e, err := decodeTypeExpr(eraw, fmt.Sprintf("%s.elems[%d]", path, i))
			if err != nil {
				return nil, err
			}
			t.Elements = append(t.Elements, e)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%s: unknown type kind %q", path, n.Kind)
}
