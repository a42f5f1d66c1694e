package typesystem

// InferContext owns all mutable inference state for one compilation unit:
// the substitution map, the variable counter, and the let-nesting level.
// It is never shared across units and is not safe for concurrent use.
type InferContext struct {
	nextID   int
	level    int
	bindings Subst
}

// NewInferContext creates an empty inference context.
func NewInferContext() *InferContext {
	return &InferContext{bindings: make(Subst)}
}

// FreshVar allocates an unbound variable stamped with the current level.
func (ctx *InferContext) FreshVar() TVar {
	v := TVar{ID: ctx.nextID, Level: ctx.level}
	ctx.nextID++
	return v
}

// EnterLevel opens a let-binding scope for generalization.
func (ctx *InferContext) EnterLevel() { ctx.level++ }

// LeaveLevel closes the innermost let-binding scope.
func (ctx *InferContext) LeaveLevel() {
	if ctx.level > 0 {
		ctx.level--
	}
}

// Level returns the current let-nesting depth.
func (ctx *InferContext) Level() int { return ctx.level }

// Resolve follows substitution chains to a normal form, rebuilding compound
// types so no bound variable remains anywhere in the result.
func (ctx *InferContext) Resolve(t Type) Type {
	switch ty := t.(type) {
	case TVar:
		if bound, ok := ctx.bindings[ty.ID]; ok {
			return ctx.Resolve(bound)
		}
		return ty
	case TCon:
		return ty
	case TApp:
		args := make([]Type, len(ty.Args))
		for i, a := range ty.Args {
			args[i] = ctx.Resolve(a)
		}
		return TApp{Constructor: ctx.Resolve(ty.Constructor), Args: args}
	case TFunc:
		params := make([]Type, len(ty.Params))
		for i, p := range ty.Params {
			params[i] = ctx.Resolve(p)
		}
		return TFunc{Params: params, ReturnType: ctx.Resolve(ty.ReturnType)}
	case TTuple:
		elems := make([]Type, len(ty.Elements))
		for i, e := range ty.Elements {
			elems[i] = ctx.Resolve(e)
		}
		return TTuple{Elements: elems}
	}
	return t
}

// shallowResolve follows variable chains without rebuilding compound types.
func (ctx *InferContext) shallowResolve(t Type) Type {
	for {
		v, ok := t.(TVar)
		if !ok {
			return t
		}
		bound, ok := ctx.bindings[v.ID]
		if !ok {
			return v
		}
		t = bound
	}
}

// bind records v := t. A variable is bound at most once; rebinding is a
// programming error caught here rather than silently overwritten.
func (ctx *InferContext) bind(v TVar, t Type) {
	if _, ok := ctx.bindings[v.ID]; ok {
		panic("typesystem: type variable bound twice")
	}
	ctx.bindings[v.ID] = t
}

// Snapshot captures the substitution for later rollback. Used by callers
// performing speculative unification; ordinary inference never rolls back.
type Snapshot struct {
	bindings Subst
	nextID   int
	level    int
}

// Snapshot copies the current substitution state.
func (ctx *InferContext) Snapshot() Snapshot {
	b := make(Subst, len(ctx.bindings))
	for k, v := range ctx.bindings {
		b[k] = v
	}
	return Snapshot{bindings: b, nextID: ctx.nextID, level: ctx.level}
}

// Rollback restores a previously captured substitution state.
func (ctx *InferContext) Rollback(s Snapshot) {
	ctx.bindings = s.bindings
	ctx.nextID = s.nextID
	ctx.level = s.level
}
