package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in the system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar is an unbound inference variable. Level records the let-nesting depth
// at which it was created; generalization quantifies a variable only when its
// level is deeper than the level being closed.
type TVar struct {
	ID    int
	Level int
}

func (t TVar) String() string { return fmt.Sprintf("t%d", t.ID) }

func (t TVar) Apply(s Subst) Type {
	if r, ok := s[t.ID]; ok {
		return r.Apply(s)
	}
	return t
}

func (t TVar) FreeTypeVariables() []TVar { return []TVar{t} }

// TCon is a nullary type constructor: Int, Bool, Shape.
type TCon struct {
	Name string
}

func (t TCon) String() string            { return t.Name }
func (t TCon) Apply(s Subst) Type        { return t }
func (t TCon) FreeTypeVariables() []TVar { return nil }

// TApp is an applied generic type: Option<Int>, Result<a, e>.
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t TApp) String() string {
	if len(t.Args) == 0 {
		return t.Constructor.String()
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Constructor.String() + "<" + strings.Join(args, ", ") + ">"
}

func (t TApp) Apply(s Subst) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Apply(s)
	}
	return TApp{Constructor: t.Constructor.Apply(s), Args: args}
}

func (t TApp) FreeTypeVariables() []TVar {
	vars := t.Constructor.FreeTypeVariables()
	for _, a := range t.Args {
		vars = append(vars, a.FreeTypeVariables()...)
	}
	return vars
}

// TFunc is a function type. Parameters unify invariantly.
type TFunc struct {
	Params     []Type
	ReturnType Type
}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + ") -> " + t.ReturnType.String()
}

func (t TFunc) Apply(s Subst) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Apply(s)
	}
	return TFunc{Params: params, ReturnType: t.ReturnType.Apply(s)}
}

func (t TFunc) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	return append(vars, t.ReturnType.FreeTypeVariables()...)
}

// TTuple is a product type: (Int, String).
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

func (t TTuple) Apply(s Subst) Type {
	elems := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.Apply(s)
	}
	return TTuple{Elements: elems}
}

func (t TTuple) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, e := range t.Elements {
		vars = append(vars, e.FreeTypeVariables()...)
	}
	return vars
}

// Subst maps type variable ids to types.
type Subst map[int]Type

// Scheme is a type with universally quantified variables, produced only by
// generalization and consumed only by instantiation.
type Scheme struct {
	Vars []int
	Body Type
}

// Mono wraps a type in a scheme with no quantified variables.
func Mono(t Type) *Scheme { return &Scheme{Body: t} }

func (s *Scheme) String() string {
	if len(s.Vars) == 0 {
		return s.Body.String()
	}
	vars := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		vars[i] = fmt.Sprintf("t%d", v)
	}
	return "forall " + strings.Join(vars, " ") + ". " + s.Body.String()
}

// Builtin nullary type constructors.
var (
	Int    = TCon{Name: "Int"}
	Float  = TCon{Name: "Float"}
	String = TCon{Name: "String"}
	Char   = TCon{Name: "Char"}
	Bool   = TCon{Name: "Bool"}
	Unit   = TCon{Name: "Unit"}
)
