package analyzer

import (
	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/config"
	"github.com/snow-lang/snow/internal/diagnostics"
	"github.com/snow-lang/snow/internal/symbols"
	"github.com/snow-lang/snow/internal/typesystem"
)

// predeclareType reserves a type name before any variant is built, so field
// types may reference types declared later in the unit.
func (w *walker) predeclareType(name string, paramCount int, decl ast.Node) {
	if existing, ok := w.table.Find(name); ok && existing.Kind == symbols.TypeSymbol {
		d := diagnostics.New(diagnostics.ErrT010, decl.Span(), name)
		if existing.DefinitionNode != nil {
			d = d.WithRelated(existing.DefinitionNode.Span(), "previous definition here")
		}
		w.addError(d)
		return
	}
	w.table.DefineType(name, typesystem.Mono(typesystem.TCon{Name: name}), decl)
	w.paramCounts[name] = paramCount
}

// registerSumType builds the registry entry and the constructor schemes for
// one sum type declaration. Every variant constructor is generalized and
// inserted under both its bare name and the Type.Variant qualified name, so
// construction sites and pattern sites resolve through the same scheme.
func (w *walker) registerSumType(decl *ast.SumTypeDeclaration, table *symbols.SymbolTable) {
	reg := table.Registry()
	if _, ok := reg.SumType(decl.Name); ok {
		return // duplicate already reported in predeclaration
	}

	w.ctx.EnterLevel()

	paramVars := make([]typesystem.TVar, len(decl.TypeParams))
	paramScope := make(map[string]typesystem.TVar, len(decl.TypeParams))
	for i, p := range decl.TypeParams {
		v := w.ctx.FreshVar()
		paramVars[i] = v
		paramScope[p] = v
	}

	var resultTy typesystem.Type = typesystem.TCon{Name: decl.Name}
	if len(paramVars) > 0 {
		args := make([]typesystem.Type, len(paramVars))
		for i, v := range paramVars {
			args[i] = v
		}
		resultTy = typesystem.TApp{Constructor: typesystem.TCon{Name: decl.Name}, Args: args}
	}

	def := &symbols.SumTypeDef{
		Name:       decl.Name,
		TypeParams: decl.TypeParams,
		ParamVars:  paramVars,
		Decl:       decl,
	}

	type pending struct {
		variant *ast.VariantDecl
		ctorTy  typesystem.Type
	}
	var ctors []pending

	for _, variant := range decl.Variants {
		fields := make([]symbols.VariantField, len(variant.Fields))
		fieldTypes := make([]typesystem.Type, len(variant.Fields))
		bad := false
		for i, f := range variant.Fields {
			ft, err := w.buildType(f.Type, paramScope, table)
			if err != nil {
				w.addError(err)
				bad = true
				break
			}
			fields[i] = symbols.VariantField{Name: f.Name, Type: ft}
			fieldTypes[i] = ft
		}
		if bad {
			continue
		}
		def.Variants = append(def.Variants, symbols.VariantDef{Name: variant.Name, Fields: fields})

		var ctorTy typesystem.Type = resultTy
		if len(fieldTypes) > 0 {
			ctorTy = typesystem.TFunc{Params: fieldTypes, ReturnType: resultTy}
		}
		ctors = append(ctors, pending{variant: variant, ctorTy: ctorTy})
	}

	w.ctx.LeaveLevel()

	// Generalize outside the level so the parameter variables quantify.
	for _, c := range ctors {
		scheme := w.ctx.Generalize(c.ctorTy)
		table.DefineConstructor(c.variant.Name, scheme, c.variant)
		table.DefineConstructor(symbols.QualifiedName(decl.Name, c.variant.Name), scheme, c.variant)
		w.schemes[symbols.QualifiedName(decl.Name, c.variant.Name)] = scheme
	}

	reg.AddSumType(def)
}

// registerStruct records a struct definition and its record-constructor
// scheme. Field access instantiates field types through the registry.
func (w *walker) registerStruct(decl *ast.StructDeclaration, table *symbols.SymbolTable) {
	reg := table.Registry()
	if _, ok := reg.Struct(decl.Name); ok {
		return
	}

	w.ctx.EnterLevel()

	paramVars := make([]typesystem.TVar, len(decl.TypeParams))
	paramScope := make(map[string]typesystem.TVar, len(decl.TypeParams))
	for i, p := range decl.TypeParams {
		v := w.ctx.FreshVar()
		paramVars[i] = v
		paramScope[p] = v
	}

	def := &symbols.StructDef{
		Name:       decl.Name,
		TypeParams: decl.TypeParams,
		ParamVars:  paramVars,
		Decl:       decl,
	}
	fieldTypes := make([]typesystem.Type, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		ft, err := w.buildType(f.Type, paramScope, table)
		if err != nil {
			w.addError(err)
			continue
		}
		def.Fields = append(def.Fields, symbols.VariantField{Name: f.Name, Type: ft})
		fieldTypes = append(fieldTypes, ft)
	}

	var resultTy typesystem.Type = typesystem.TCon{Name: decl.Name}
	if len(paramVars) > 0 {
		args := make([]typesystem.Type, len(paramVars))
		for i, v := range paramVars {
			args[i] = v
		}
		resultTy = typesystem.TApp{Constructor: typesystem.TCon{Name: decl.Name}, Args: args}
	}
	var ctorTy typesystem.Type = resultTy
	if len(fieldTypes) > 0 {
		ctorTy = typesystem.TFunc{Params: fieldTypes, ReturnType: resultTy}
	}

	w.ctx.LeaveLevel()

	// The struct's name doubles as its record constructor, taking the
	// fields in declaration order. The scheme lives on the registry entry
	// so the environment binding stays a type symbol.
	def.Ctor = w.ctx.Generalize(ctorTy)
	reg.AddStruct(def)
}

// buildType lowers a syntactic type annotation to a semantic type. Names are
// resolved against the parameter scope first, then the environment.
func (w *walker) buildType(te ast.TypeExpr, paramScope map[string]typesystem.TVar, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	switch t := te.(type) {
	case *ast.NamedType:
		if v, ok := paramScope[t.Name]; ok {
			if len(t.Args) > 0 {
				return nil, diagnostics.New(diagnostics.ErrT005, t.Span(), 0, len(t.Args))
			}
			return v, nil
		}
		sym, ok := table.Find(t.Name)
		if !ok || sym.Kind != symbols.TypeSymbol {
			return nil, diagnostics.New(diagnostics.ErrT011, t.Span(), t.Name)
		}
		if want, tracked := w.paramCounts[t.Name]; tracked && want != len(t.Args) {
			return nil, diagnostics.New(diagnostics.ErrT005, t.Span(), want, len(t.Args))
		}
		if len(t.Args) == 0 {
			return typesystem.TCon{Name: t.Name}, nil
		}
		args := make([]typesystem.Type, len(t.Args))
		for i, a := range t.Args {
			at, err := w.buildType(a, paramScope, table)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		return typesystem.TApp{Constructor: typesystem.TCon{Name: t.Name}, Args: args}, nil

	case *ast.FunctionTypeExpr:
		params := make([]typesystem.Type, len(t.Params))
		for i, p := range t.Params {
			pt, err := w.buildType(p, paramScope, table)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := w.buildType(t.Return, paramScope, table)
		if err != nil {
			return nil, err
		}
		return typesystem.TFunc{Params: params, ReturnType: ret}, nil

	case *ast.TupleTypeExpr:
		elems := make([]typesystem.Type, len(t.Elements))
		for i, e := range t.Elements {
			et, err := w.buildType(e, paramScope, table)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return typesystem.TTuple{Elements: elems}, nil
	}
	return nil, diagnostics.New(diagnostics.ErrT011, te.Span(), "?")
}

// checkFunction infers a named function. The name is pre-bound to a fresh
// monomorphic variable so recursive calls type-check, then rebound to the
// generalized scheme once the body is inferred.
func (w *walker) checkFunction(decl *ast.FunctionDeclaration, table *symbols.SymbolTable) *diagnostics.Diagnostic {
	if sym, ok := table.Find(decl.Name); ok && table.IsDefinedLocally(decl.Name) && sym.Kind == symbols.VariableSymbol {
		d := diagnostics.New(diagnostics.ErrT010, decl.Span(), decl.Name)
		if sym.DefinitionNode != nil {
			d = d.WithRelated(sym.DefinitionNode.Span(), "previous definition here")
		}
		return d
	}

	w.ctx.EnterLevel()

	selfVar := w.ctx.FreshVar()
	table.Define(decl.Name, typesystem.Mono(selfVar), decl)

	fnScope := symbols.NewEnclosedSymbolTable(table)
	paramTypes := make([]typesystem.Type, len(decl.Params))
	for i, p := range decl.Params {
		pv := w.ctx.FreshVar()
		paramTypes[i] = pv
		fnScope.Define(p.Name, typesystem.Mono(pv), p)
		w.typeMap[p] = pv
	}

	bodyTy, err := w.inferExpr(decl.Body, fnScope)
	if err != nil {
		w.ctx.LeaveLevel()
		return err
	}

	fnTy := typesystem.TFunc{Params: paramTypes, ReturnType: bodyTy}
	if uerr := w.ctx.Unify(selfVar, fnTy); uerr != nil {
		w.ctx.LeaveLevel()
		return w.typeError(uerr, decl.Span())
	}

	w.ctx.LeaveLevel()

	scheme := w.ctx.Generalize(fnTy)
	table.Define(decl.Name, scheme, decl)
	w.schemes[decl.Name] = scheme
	w.typeMap[decl] = fnTy
	return nil
}

// checkLet infers a let binding. A named let generalizes its value
// (let-polymorphism); a destructuring let binds monomorphically and must be
// irrefutable.
func (w *walker) checkLet(decl *ast.LetDeclaration, table *symbols.SymbolTable) *diagnostics.Diagnostic {
	if decl.Name != "" {
		if sym, ok := table.Find(decl.Name); ok && table.IsDefinedLocally(decl.Name) && sym.Kind == symbols.VariableSymbol {
			d := diagnostics.New(diagnostics.ErrT010, decl.Span(), decl.Name)
			if sym.DefinitionNode != nil {
				d = d.WithRelated(sym.DefinitionNode.Span(), "previous definition here")
			}
			return d
		}

		w.ctx.EnterLevel()
		valTy, err := w.inferExpr(decl.Value, table)
		w.ctx.LeaveLevel()
		if err != nil {
			return err
		}

		scheme := w.ctx.Generalize(valTy)
		table.Define(decl.Name, scheme, decl)
		w.schemes[decl.Name] = scheme
		w.typeMap[decl] = valTy
		return nil
	}

	valTy, err := w.inferExpr(decl.Value, table)
	if err != nil {
		return err
	}
	if err := w.inferPattern(decl.Pattern, valTy, table); err != nil {
		return err
	}
	w.typeMap[decl] = valTy

	// A destructuring binding is a one-arm match; it must cover every value.
	return w.checkBindingExhaustive(decl.Pattern, valTy, table)
}

// checkBindingExhaustive verifies a destructuring pattern is irrefutable.
func (w *walker) checkBindingExhaustive(pat ast.Pattern, scrutTy typesystem.Type, table *symbols.SymbolTable) *diagnostics.Diagnostic {
	c := newMatchChecker(w.ctx, table.Registry(), matchDepthLimit(w.cfg))
	arm := matchRow{pattern: w.toAbstract(pat, table)}
	if d := c.checkExhaustive([]matchRow{arm}, scrutTy, pat.Span()); d != nil {
		return d
	}
	return nil
}

// matchDepthLimit resolves the configured specialization bound.
func matchDepthLimit(cfg *config.Config) int {
	if cfg == nil || cfg.MatchDepthLimit <= 0 {
		return config.DefaultMatchDepthLimit
	}
	return cfg.MatchDepthLimit
}
