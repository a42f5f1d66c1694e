package typesystem

// Generalize closes t into a scheme, quantifying every still-unbound
// variable created strictly deeper than the current level. Variables at or
// below the current level belong to an enclosing, not-yet-generalized scope
// and stay free.
func (ctx *InferContext) Generalize(t Type) *Scheme {
	resolved := ctx.Resolve(t)
	var vars []int
	seen := make(map[int]bool)
	for _, v := range resolved.FreeTypeVariables() {
		if v.Level > ctx.level && !seen[v.ID] {
			seen[v.ID] = true
			vars = append(vars, v.ID)
		}
	}
	return &Scheme{Vars: vars, Body: resolved}
}

// Instantiate replaces every quantified variable of the scheme with a fresh
// unbound variable at the current level, returning a monomorphic type ready
// for unification. Each call allocates fresh ids, so two instantiations of
// the same scheme never alias.
func (ctx *InferContext) Instantiate(s *Scheme) Type {
	if len(s.Vars) == 0 {
		return s.Body
	}
	subst := make(Subst, len(s.Vars))
	for _, id := range s.Vars {
		subst[id] = ctx.FreshVar()
	}
	return s.Body.Apply(subst)
}
