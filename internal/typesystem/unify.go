package typesystem

import "fmt"

// MismatchError reports two incompatible concrete types. Both sides are
// fully resolved when the error is built.
type MismatchError struct {
	Expected Type
	Found    Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
}

// InfiniteTypeError reports an occurs-check failure: binding Var would embed
// it inside its own solution.
type InfiniteTypeError struct {
	Var  TVar
	Type Type
}

func (e *InfiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Var, e.Type)
}

// ArityError reports mismatched function, tuple, or type-argument counts.
type ArityError struct {
	Expected int
	Found    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("arity mismatch: expected %d, found %d", e.Expected, e.Found)
}

// OccursIn reports whether v appears anywhere inside t, following bound
// variables through the substitution.
func (ctx *InferContext) OccursIn(v TVar, t Type) bool {
	switch ty := t.(type) {
	case TVar:
		if ty.ID == v.ID {
			return true
		}
		if bound, ok := ctx.bindings[ty.ID]; ok {
			return ctx.OccursIn(v, bound)
		}
		return false
	case TCon:
		return false
	case TApp:
		if ctx.OccursIn(v, ty.Constructor) {
			return true
		}
		for _, a := range ty.Args {
			if ctx.OccursIn(v, a) {
				return true
			}
		}
		return false
	case TFunc:
		for _, p := range ty.Params {
			if ctx.OccursIn(v, p) {
				return true
			}
		}
		return ctx.OccursIn(v, ty.ReturnType)
	case TTuple:
		for _, e := range ty.Elements {
			if ctx.OccursIn(v, e) {
				return true
			}
		}
		return false
	}
	return false
}

// Unify makes a and b equal by extending the substitution, or fails with a
// typed error. The substitution is mutated only on the path taken up to the
// point of failure; callers that need rollback-on-failure must Snapshot
// first.
func (ctx *InferContext) Unify(a, b Type) error {
	a = ctx.shallowResolve(a)
	b = ctx.shallowResolve(b)

	av, aIsVar := a.(TVar)
	bv, bIsVar := b.(TVar)

	switch {
	case aIsVar && bIsVar:
		if av.ID == bv.ID {
			return nil
		}
		// Bind the younger variable to the older one so the surviving
		// representative keeps the outermost level. This keeps
		// generalization from quantifying a variable that escaped into
		// an enclosing scope.
		if av.Level >= bv.Level {
			ctx.bind(av, bv)
		} else {
			ctx.bind(bv, av)
		}
		return nil

	case aIsVar:
		return ctx.bindChecked(av, b)

	case bIsVar:
		return ctx.bindChecked(bv, a)
	}

	switch at := a.(type) {
	case TCon:
		if bt, ok := b.(TCon); ok {
			if at.Name == bt.Name {
				return nil
			}
		}

	case TApp:
		if bt, ok := b.(TApp); ok {
			if err := ctx.Unify(at.Constructor, bt.Constructor); err != nil {
				return err
			}
			if len(at.Args) != len(bt.Args) {
				return &ArityError{Expected: len(at.Args), Found: len(bt.Args)}
			}
			for i := range at.Args {
				if err := ctx.Unify(at.Args[i], bt.Args[i]); err != nil {
					return err
				}
			}
			return nil
		}

	case TFunc:
		if bt, ok := b.(TFunc); ok {
			if len(at.Params) != len(bt.Params) {
				return &ArityError{Expected: len(at.Params), Found: len(bt.Params)}
			}
			for i := range at.Params {
				if err := ctx.Unify(at.Params[i], bt.Params[i]); err != nil {
					return err
				}
			}
			return ctx.Unify(at.ReturnType, bt.ReturnType)
		}

	case TTuple:
		if bt, ok := b.(TTuple); ok {
			if len(at.Elements) != len(bt.Elements) {
				return &ArityError{Expected: len(at.Elements), Found: len(bt.Elements)}
			}
			for i := range at.Elements {
				if err := ctx.Unify(at.Elements[i], bt.Elements[i]); err != nil {
					return err
				}
			}
			return nil
		}
	}

	return &MismatchError{Expected: ctx.Resolve(a), Found: ctx.Resolve(b)}
}

func (ctx *InferContext) bindChecked(v TVar, t Type) error {
	if ctx.OccursIn(v, t) {
		return &InfiniteTypeError{Var: v, Type: ctx.Resolve(t)}
	}
	ctx.bind(v, t)
	return nil
}
