package analyzer

import (
	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/diagnostics"
	"github.com/snow-lang/snow/internal/symbols"
	"github.com/snow-lang/snow/internal/typesystem"
)

// typeError converts a unification failure into a positioned diagnostic.
func (w *walker) typeError(err error, span ast.Span) *diagnostics.Diagnostic {
	switch e := err.(type) {
	case *typesystem.MismatchError:
		return diagnostics.New(diagnostics.ErrT001, span, e.Expected, e.Found)
	case *typesystem.InfiniteTypeError:
		return diagnostics.New(diagnostics.ErrT002, span, e.Var, e.Type)
	case *typesystem.ArityError:
		return diagnostics.New(diagnostics.ErrT005, span, e.Expected, e.Found)
	}
	return diagnostics.New(diagnostics.ErrT001, span, "?", err)
}

// unify wraps InferContext.Unify with diagnostic positioning.
func (w *walker) unify(a, b typesystem.Type, span ast.Span) *diagnostics.Diagnostic {
	if err := w.ctx.Unify(a, b); err != nil {
		return w.typeError(err, span)
	}
	return nil
}

func literalType(kind ast.LiteralKind) typesystem.Type {
	switch kind {
	case ast.LitInt:
		return typesystem.Int
	case ast.LitFloat:
		return typesystem.Float
	case ast.LitString:
		return typesystem.String
	case ast.LitChar:
		return typesystem.Char
	case ast.LitBool:
		return typesystem.Bool
	}
	return typesystem.Unit
}

// inferExpr infers the type of one expression. The first violation inside a
// construct aborts that construct; the caller records the diagnostic and
// moves on to the next declaration.
func (w *walker) inferExpr(expr ast.Expression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	w.stats.Expressions++

	var ty typesystem.Type
	var err *diagnostics.Diagnostic

	switch e := expr.(type) {
	case *ast.Literal:
		ty = literalType(e.Kind)

	case *ast.Identifier:
		sym, ok := table.Find(e.Name)
		if !ok {
			return nil, diagnostics.New(diagnostics.ErrT003, e.Span(), e.Name)
		}
		if sym.Kind == symbols.TypeSymbol {
			// A struct's name in value position is its record constructor.
			def, isStruct := table.Registry().Struct(e.Name)
			if !isStruct {
				return nil, diagnostics.New(diagnostics.ErrT003, e.Span(), e.Name)
			}
			ty = w.ctx.Instantiate(def.Ctor)
			break
		}
		ty = w.ctx.Instantiate(sym.Scheme)

	case *ast.FieldAccess:
		ty, err = w.inferFieldAccess(e, table)

	case *ast.CallExpression:
		ty, err = w.inferCall(e, table)

	case *ast.BinaryExpression:
		ty, err = w.inferBinary(e, table)

	case *ast.UnaryExpression:
		ty, err = w.inferUnary(e, table)

	case *ast.TupleExpression:
		elems := make([]typesystem.Type, len(e.Elements))
		for i, el := range e.Elements {
			et, eerr := w.inferExpr(el, table)
			if eerr != nil {
				return nil, eerr
			}
			elems[i] = et
		}
		if len(elems) == 1 {
			ty = elems[0] // grouping parens, not a product
		} else {
			ty = typesystem.TTuple{Elements: elems}
		}

	case *ast.IfExpression:
		ty, err = w.inferIf(e, table)

	case *ast.BlockExpression:
		ty, err = w.inferBlock(e, table)

	case *ast.ClosureExpression:
		ty, err = w.inferClosure(e, table)

	case *ast.MatchExpression:
		ty, err = w.inferMatch(e, table)

	default:
		return nil, diagnostics.New(diagnostics.ErrT003, expr.Span(), "expression")
	}

	if err != nil {
		return nil, err
	}
	w.typeMap[expr] = ty
	return ty, nil
}

// inferFieldAccess types `recv.field`. When the receiver names a registered
// type this is qualified constructor access and takes precedence over any
// value binding of the same name; otherwise it is struct field access.
func (w *walker) inferFieldAccess(e *ast.FieldAccess, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	if id, ok := e.Receiver.(*ast.Identifier); ok {
		if sym, found := table.Find(id.Name); found && sym.Kind == symbols.TypeSymbol {
			scheme, ok := table.ResolveQualifiedConstructor(id.Name, e.Field)
			if !ok {
				return nil, diagnostics.New(diagnostics.ErrT004, e.Span(), symbols.QualifiedName(id.Name, e.Field))
			}
			return w.ctx.Instantiate(scheme), nil
		}
	}

	recvTy, err := w.inferExpr(e.Receiver, table)
	if err != nil {
		return nil, err
	}

	resolved := w.ctx.Resolve(recvTy)
	var typeName string
	var typeArgs []typesystem.Type
	switch rt := resolved.(type) {
	case typesystem.TCon:
		typeName = rt.Name
	case typesystem.TApp:
		if con, ok := rt.Constructor.(typesystem.TCon); ok {
			typeName = con.Name
			typeArgs = rt.Args
		}
	}
	if typeName == "" {
		return nil, diagnostics.New(diagnostics.ErrT012, e.Span(), resolved, e.Field)
	}

	def, ok := table.Registry().Struct(typeName)
	if !ok {
		return nil, diagnostics.New(diagnostics.ErrT012, e.Span(), resolved, e.Field)
	}
	ft, ok := def.FieldType(e.Field, typeArgs)
	if !ok {
		return nil, diagnostics.New(diagnostics.ErrT012, e.Span(), resolved, e.Field)
	}
	return ft, nil
}

// inferCall types `callee(args...)`: infer the callee, infer the arguments,
// and unify the callee with a fresh arrow ending in a fresh result variable.
// Constructor application goes through the same path as ordinary calls.
func (w *walker) inferCall(e *ast.CallExpression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	calleeTy, err := w.inferExpr(e.Callee, table)
	if err != nil {
		return nil, err
	}

	argTys := make([]typesystem.Type, len(e.Args))
	for i, a := range e.Args {
		at, aerr := w.inferExpr(a, table)
		if aerr != nil {
			return nil, aerr
		}
		argTys[i] = at
	}

	retVar := w.ctx.FreshVar()
	want := typesystem.TFunc{Params: argTys, ReturnType: retVar}
	if uerr := w.unify(calleeTy, want, e.Span()); uerr != nil {
		return nil, uerr
	}
	return retVar, nil
}

func (w *walker) inferBinary(e *ast.BinaryExpression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	leftTy, err := w.inferExpr(e.Left, table)
	if err != nil {
		return nil, err
	}
	rightTy, err := w.inferExpr(e.Right, table)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+", "-", "*", "/", "%":
		if uerr := w.unify(leftTy, rightTy, e.Span()); uerr != nil {
			return nil, uerr.WithRelated(e.Left.Span(), "left operand inferred here")
		}
		return leftTy, nil

	case "==", "!=", "<", ">", "<=", ">=":
		if uerr := w.unify(leftTy, rightTy, e.Span()); uerr != nil {
			return nil, uerr.WithRelated(e.Left.Span(), "left operand inferred here")
		}
		return typesystem.Bool, nil

	case "&&", "||", "and", "or":
		if uerr := w.unify(leftTy, typesystem.Bool, e.Left.Span()); uerr != nil {
			return nil, uerr
		}
		if uerr := w.unify(rightTy, typesystem.Bool, e.Right.Span()); uerr != nil {
			return nil, uerr
		}
		return typesystem.Bool, nil

	case "++":
		if uerr := w.unify(leftTy, typesystem.String, e.Left.Span()); uerr != nil {
			return nil, uerr
		}
		if uerr := w.unify(rightTy, typesystem.String, e.Right.Span()); uerr != nil {
			return nil, uerr
		}
		return typesystem.String, nil
	}

	return nil, diagnostics.New(diagnostics.ErrT003, e.Span(), e.Op)
}

func (w *walker) inferUnary(e *ast.UnaryExpression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	opTy, err := w.inferExpr(e.Operand, table)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		return opTy, nil
	case "!", "not":
		if uerr := w.unify(opTy, typesystem.Bool, e.Operand.Span()); uerr != nil {
			return nil, uerr
		}
		return typesystem.Bool, nil
	}
	return nil, diagnostics.New(diagnostics.ErrT003, e.Span(), e.Op)
}

// inferIf types a conditional. Both branches must agree; without an else the
// expression's type is the then-branch's type.
func (w *walker) inferIf(e *ast.IfExpression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	condTy, err := w.inferExpr(e.Condition, table)
	if err != nil {
		return nil, err
	}
	if uerr := w.unify(condTy, typesystem.Bool, e.Condition.Span()); uerr != nil {
		return nil, uerr
	}

	thenTy, err := w.inferExpr(e.Then, table)
	if err != nil {
		return nil, err
	}
	if e.Else == nil {
		return thenTy, nil
	}

	elseTy, err := w.inferExpr(e.Else, table)
	if err != nil {
		return nil, err
	}
	if uerr := w.unify(thenTy, elseTy, e.Else.Span()); uerr != nil {
		return nil, uerr.WithRelated(e.Then.Span(), "then branch inferred here")
	}
	return thenTy, nil
}

// inferBlock types a sequence of declarations plus a tail expression in a
// fresh child scope. A block with no tail is Unit.
func (w *walker) inferBlock(e *ast.BlockExpression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	scope := symbols.NewEnclosedSymbolTable(table)

	for _, decl := range e.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDeclaration:
			if err := w.checkFunction(d, scope); err != nil {
				return nil, err
			}
		case *ast.LetDeclaration:
			if err := w.checkLet(d, scope); err != nil {
				return nil, err
			}
		case *ast.ExpressionStatement:
			if _, err := w.inferExpr(d.Expression, scope); err != nil {
				return nil, err
			}
		case *ast.SumTypeDeclaration:
			w.predeclareType(d.Name, len(d.TypeParams), d)
			w.registerSumType(d, scope)
		case *ast.StructDeclaration:
			w.predeclareType(d.Name, len(d.TypeParams), d)
			w.registerStruct(d, scope)
		}
	}

	if e.Tail == nil {
		return typesystem.Unit, nil
	}
	return w.inferExpr(e.Tail, scope)
}

// inferClosure types an anonymous function. Closures are never generalized;
// only let and fn bindings introduce polymorphism.
func (w *walker) inferClosure(e *ast.ClosureExpression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	scope := symbols.NewEnclosedSymbolTable(table)

	paramTypes := make([]typesystem.Type, len(e.Params))
	for i, p := range e.Params {
		pv := w.ctx.FreshVar()
		paramTypes[i] = pv
		scope.Define(p.Name, typesystem.Mono(pv), p)
		w.typeMap[p] = pv
	}

	bodyTy, err := w.inferExpr(e.Body, scope)
	if err != nil {
		return nil, err
	}
	return typesystem.TFunc{Params: paramTypes, ReturnType: bodyTy}, nil
}

// inferMatch types a match expression: every arm pattern against the
// scrutinee, guards validated and typed Bool, all arm bodies unified. After
// typing, the arms go through exhaustiveness and redundancy analysis.
func (w *walker) inferMatch(e *ast.MatchExpression, table *symbols.SymbolTable) (typesystem.Type, *diagnostics.Diagnostic) {
	scrutTy, err := w.inferExpr(e.Scrutinee, table)
	if err != nil {
		return nil, err
	}

	var resultTy typesystem.Type
	var firstBodySpan ast.Span
	rows := make([]matchRow, 0, len(e.Arms))

	for _, arm := range e.Arms {
		armScope := symbols.NewEnclosedSymbolTable(table)

		if perr := w.inferPattern(arm.Pattern, scrutTy, armScope); perr != nil {
			return nil, perr
		}

		if arm.Guard != nil {
			if gerr := w.validateGuard(arm.Guard); gerr != nil {
				return nil, gerr
			}
			guardTy, gerr := w.inferExpr(arm.Guard, armScope)
			if gerr != nil {
				return nil, gerr
			}
			if w.ctx.Unify(guardTy, typesystem.Bool) != nil {
				return nil, diagnostics.New(diagnostics.ErrT009, arm.Guard.Span(), w.ctx.Resolve(guardTy))
			}
		}

		bodyTy, berr := w.inferExpr(arm.Body, armScope)
		if berr != nil {
			return nil, berr
		}
		if resultTy == nil {
			resultTy = bodyTy
			firstBodySpan = arm.Body.Span()
		} else if uerr := w.unify(resultTy, bodyTy, arm.Body.Span()); uerr != nil {
			return nil, uerr.WithRelated(firstBodySpan, "first arm inferred here")
		}

		rows = append(rows, matchRow{
			pattern: w.toAbstract(arm.Pattern, armScope),
			guarded: arm.Guard != nil,
			span:    arm.Span(),
		})
	}

	c := newMatchChecker(w.ctx, table.Registry(), matchDepthLimit(w.cfg))
	if d := c.checkExhaustive(rows, scrutTy, e.Span()); d != nil {
		return nil, d
	}
	for _, warn := range c.checkRedundant(rows, scrutTy) {
		w.addWarning(warn)
	}

	if resultTy == nil {
		resultTy = typesystem.Unit
	}
	return resultTy, nil
}
