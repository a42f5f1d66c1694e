package analyzer

import (
	"testing"

	"github.com/google/uuid"

	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/config"
	"github.com/snow-lang/snow/internal/diagnostics"
)

// AST construction helpers. Spans are synthetic; only diagnostics read them.

var nextLine int

func sp() ast.Span {
	nextLine++
	return ast.Span{
		Start: ast.Position{Line: nextLine, Column: 1},
		End:   ast.Position{Line: nextLine, Column: 2},
	}
}

func intLit(v string) *ast.Literal  { return &ast.Literal{Sp: sp(), Kind: ast.LitInt, Value: v} }
func boolLit(v string) *ast.Literal { return &ast.Literal{Sp: sp(), Kind: ast.LitBool, Value: v} }
func strLit(v string) *ast.Literal  { return &ast.Literal{Sp: sp(), Kind: ast.LitString, Value: v} }
func ident(name string) *ast.Identifier {
	return &ast.Identifier{Sp: sp(), Name: name}
}
func call(callee ast.Expression, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Sp: sp(), Callee: callee, Args: args}
}
func field(recv ast.Expression, name string) *ast.FieldAccess {
	return &ast.FieldAccess{Sp: sp(), Receiver: recv, Field: name}
}
func binary(op string, l, r ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Sp: sp(), Op: op, Left: l, Right: r}
}
func letDecl(name string, value ast.Expression) *ast.LetDeclaration {
	return &ast.LetDeclaration{Sp: sp(), Name: name, Value: value}
}
func fnDecl(name string, params []string, body ast.Expression) *ast.FunctionDeclaration {
	ps := make([]*ast.Param, len(params))
	for i, p := range params {
		ps[i] = &ast.Param{Sp: sp(), Name: p}
	}
	return &ast.FunctionDeclaration{Sp: sp(), Name: name, Params: ps, Body: body}
}
func namedType(name string, args ...ast.TypeExpr) *ast.NamedType {
	return &ast.NamedType{Sp: sp(), Name: name, Args: args}
}
func variant(name string, fields ...ast.TypeExpr) *ast.VariantDecl {
	fs := make([]*ast.FieldDecl, len(fields))
	for i, f := range fields {
		fs[i] = &ast.FieldDecl{Sp: sp(), Type: f}
	}
	return &ast.VariantDecl{Sp: sp(), Name: name, Fields: fs}
}
func sumDecl(name string, params []string, variants ...*ast.VariantDecl) *ast.SumTypeDeclaration {
	return &ast.SumTypeDeclaration{Sp: sp(), Name: name, TypeParams: params, Variants: variants}
}

func wildcard() *ast.WildcardPattern { return &ast.WildcardPattern{Sp: sp()} }
func identPat(name string) *ast.IdentifierPattern {
	return &ast.IdentifierPattern{Sp: sp(), Name: name}
}
func boolPat(v string) *ast.LiteralPattern {
	return &ast.LiteralPattern{Sp: sp(), Kind: ast.LitBool, Value: v}
}
func intPat(v string) *ast.LiteralPattern {
	return &ast.LiteralPattern{Sp: sp(), Kind: ast.LitInt, Value: v}
}
func ctorPat(name string, args ...ast.Pattern) *ast.ConstructorPattern {
	return &ast.ConstructorPattern{Sp: sp(), Name: name, Args: args}
}
func orPattern(alts ...ast.Pattern) *ast.OrPattern {
	return &ast.OrPattern{Sp: sp(), Alternatives: alts}
}
func arm(pat ast.Pattern, body ast.Expression) *ast.MatchArm {
	return &ast.MatchArm{Sp: sp(), Pattern: pat, Body: body}
}
func guardedArm(pat ast.Pattern, guard, body ast.Expression) *ast.MatchArm {
	return &ast.MatchArm{Sp: sp(), Pattern: pat, Guard: guard, Body: body}
}
func match(scrut ast.Expression, arms ...*ast.MatchArm) *ast.MatchExpression {
	return &ast.MatchExpression{Sp: sp(), Scrutinee: scrut, Arms: arms}
}

func program(decls ...ast.Declaration) *ast.Program {
	return &ast.Program{File: "test.snow", Declarations: decls}
}

// shapeDecl declares `type Shape = Circle(Int) | Point`.
func shapeDecl() *ast.SumTypeDeclaration {
	return sumDecl("Shape", nil,
		variant("Circle", namedType(config.IntTypeName)),
		variant("Point"))
}

func check(t *testing.T, decls ...ast.Declaration) *Result {
	t.Helper()
	return CheckUnit(program(decls...), nil)
}

func assertOK(t *testing.T, res *Result) {
	t.Helper()
	if res.Failed() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func assertCode(t *testing.T, res *Result, code diagnostics.ErrorCode) *diagnostics.Diagnostic {
	t.Helper()
	for _, d := range res.Errors {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("expected error %s, got %v", code, res.Errors)
	return nil
}

func TestLiteralAndLetInference(t *testing.T) {
	res := check(t,
		letDecl("n", intLit("42")),
		letDecl("s", strLit("hi")),
	)
	assertOK(t, res)
	if res.Schemes["n"].Body.String() != "Int" {
		t.Fatalf("n: %s", res.Schemes["n"].Body)
	}
	if res.Schemes["s"].Body.String() != "String" {
		t.Fatalf("s: %s", res.Schemes["s"].Body)
	}
}

func TestLetPolymorphism(t *testing.T) {
	// fn id(x) do x end — generalizes to forall a. (a) -> a, usable at two
	// different types afterwards.
	res := check(t,
		fnDecl("id", []string{"x"}, ident("x")),
		letDecl("a", call(ident("id"), intLit("1"))),
		letDecl("b", call(ident("id"), boolLit("true"))),
	)
	assertOK(t, res)
	if len(res.Schemes["id"].Vars) != 1 {
		t.Fatalf("id not generalized: %s", res.Schemes["id"])
	}
	if res.Schemes["a"].Body.String() != "Int" || res.Schemes["b"].Body.String() != "Bool" {
		t.Fatalf("instantiations entangled: a=%s b=%s", res.Schemes["a"].Body, res.Schemes["b"].Body)
	}
}

func TestRecursiveFunction(t *testing.T) {
	// fn loop(n) do loop(n) end — recursion through the pre-bound self var.
	res := check(t, fnDecl("loop", []string{"n"}, call(ident("loop"), ident("n"))))
	assertOK(t, res)
}

func TestTypeMismatchReported(t *testing.T) {
	res := check(t, letDecl("x", binary("+", intLit("1"), boolLit("true"))))
	assertCode(t, res, diagnostics.ErrT001)
	if res.Types != nil {
		t.Fatal("failed unit must not produce typed output")
	}
}

func TestInfiniteTypeReported(t *testing.T) {
	// fn f(x) do x(x) end
	res := check(t, fnDecl("f", []string{"x"}, call(ident("x"), ident("x"))))
	assertCode(t, res, diagnostics.ErrT002)
}

func TestUnknownNameReported(t *testing.T) {
	res := check(t, letDecl("x", ident("nope")))
	assertCode(t, res, diagnostics.ErrT003)
}

func TestDuplicateDefinitionReported(t *testing.T) {
	res := check(t,
		letDecl("x", intLit("1")),
		letDecl("x", intLit("2")),
	)
	d := assertCode(t, res, diagnostics.ErrT010)
	if len(d.Related) == 0 {
		t.Fatal("duplicate definition should point at the previous one")
	}
}

func TestConstructorRegistration(t *testing.T) {
	res := check(t,
		shapeDecl(),
		letDecl("c", call(ident("Circle"), intLit("3"))),
		letDecl("p", ident("Point")),
		letDecl("q", field(ident("Shape"), "Point")),
	)
	assertOK(t, res)
	for _, name := range []string{"c", "p", "q"} {
		if got := res.Schemes[name].Body.String(); got != "Shape" {
			t.Fatalf("%s: expected Shape, got %s", name, got)
		}
	}
}

func TestQualifiedAndBareConstructorAgree(t *testing.T) {
	// Shape.Circle and Circle must type identically in both construction
	// and pattern position.
	res := check(t,
		shapeDecl(),
		letDecl("a", call(field(ident("Shape"), "Circle"), intLit("1"))),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(&ast.ConstructorPattern{Sp: sp(), TypeName: "Shape", Name: "Circle", Args: []ast.Pattern{wildcard()}}, intLit("1")),
			arm(ctorPat("Point"), intLit("2")),
		)),
	)
	assertOK(t, res)
}

func TestUnknownVariantReported(t *testing.T) {
	res := check(t,
		shapeDecl(),
		letDecl("x", field(ident("Shape"), "Square")),
	)
	assertCode(t, res, diagnostics.ErrT004)
}

func TestConstructorArityReported(t *testing.T) {
	res := check(t,
		shapeDecl(),
		letDecl("x", call(ident("Circle"), intLit("1"), intLit("2"))),
	)
	assertCode(t, res, diagnostics.ErrT005)
}

func TestPatternArityReported(t *testing.T) {
	res := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(ctorPat("Circle", wildcard(), wildcard()), intLit("1")),
			arm(wildcard(), intLit("2")),
		)),
	)
	assertCode(t, res, diagnostics.ErrT005)
}

func TestGenericSumType(t *testing.T) {
	res := check(t,
		letDecl("s", call(ident("Some"), intLit("1"))),
		letDecl("n", ident("None")),
	)
	assertOK(t, res)
	if got := res.Schemes["s"].Body.String(); got != "Option<Int>" {
		t.Fatalf("s: %s", got)
	}
	// None stays polymorphic.
	if len(res.Schemes["n"].Vars) != 1 {
		t.Fatalf("None binding not generalized: %s", res.Schemes["n"])
	}
}

func TestMatchBranchTypesMustAgree(t *testing.T) {
	res := check(t,
		fnDecl("f", []string{"b"}, match(ident("b"),
			arm(boolPat("true"), intLit("1")),
			arm(boolPat("false"), strLit("no")),
		)),
	)
	d := assertCode(t, res, diagnostics.ErrT001)
	if len(d.Related) == 0 {
		t.Fatal("mismatched arm should point at the first arm")
	}
}

func TestPatternBindingsVisibleInBody(t *testing.T) {
	res := check(t,
		shapeDecl(),
		fnDecl("radius", []string{"s"}, match(ident("s"),
			arm(ctorPat("Circle", identPat("r")), ident("r")),
			arm(ctorPat("Point"), intLit("0")),
		)),
	)
	assertOK(t, res)
	if got := res.Schemes["radius"].Body.String(); got != "(Shape) -> Int" {
		t.Fatalf("radius: %s", got)
	}
}

func TestNullaryConstructorIdentifierInPattern(t *testing.T) {
	// A bare `Point` in pattern position matches the constructor instead of
	// binding a variable, so the match below is exhaustive.
	res := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(ctorPat("Circle", wildcard()), intLit("1")),
			arm(identPat("Point"), intLit("2")),
		)),
	)
	assertOK(t, res)
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestExhaustiveMatchPasses(t *testing.T) {
	res := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(ctorPat("Circle", wildcard()), intLit("1")),
			arm(ctorPat("Point"), intLit("2")),
		)),
	)
	assertOK(t, res)
}

func TestNonExhaustiveMatchReportsWitness(t *testing.T) {
	res := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(ctorPat("Circle", wildcard()), intLit("1")),
		)),
	)
	d := assertCode(t, res, diagnostics.ErrT007)
	if len(d.Witnesses) != 1 || d.Witnesses[0] != "Point" {
		t.Fatalf("expected witness Point, got %v", d.Witnesses)
	}
}

func TestBooleanCompleteness(t *testing.T) {
	onlyTrue := check(t,
		fnDecl("f", []string{"b"}, match(ident("b"),
			arm(boolPat("true"), intLit("1")),
		)),
	)
	d := assertCode(t, onlyTrue, diagnostics.ErrT007)
	if len(d.Witnesses) != 1 || d.Witnesses[0] != "false" {
		t.Fatalf("expected witness false, got %v", d.Witnesses)
	}

	both := check(t,
		fnDecl("f", []string{"b"}, match(binary("==", ident("b"), intLit("0")),
			arm(boolPat("true"), intLit("1")),
			arm(boolPat("false"), intLit("2")),
		)),
	)
	assertOK(t, both)

	wildcardOnly := check(t,
		fnDecl("f", []string{"b"}, match(ident("b"),
			arm(wildcard(), intLit("1")),
		)),
	)
	assertOK(t, wildcardOnly)
}

func TestInfiniteTypeNeedsWildcard(t *testing.T) {
	res := check(t,
		fnDecl("f", []string{"n"}, match(binary("+", ident("n"), intLit("0")),
			arm(intPat("0"), intLit("1")),
			arm(intPat("1"), intLit("2")),
		)),
	)
	d := assertCode(t, res, diagnostics.ErrT007)
	if len(d.Witnesses) != 1 || d.Witnesses[0] != "_" {
		t.Fatalf("expected wildcard witness, got %v", d.Witnesses)
	}
}

func TestRedundancyOrderingMatters(t *testing.T) {
	wildcardFirst := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(wildcard(), intLit("1")),
			arm(ctorPat("Circle", wildcard()), intLit("2")),
		)),
	)
	assertOK(t, wildcardFirst)
	if len(wildcardFirst.Warnings) != 1 {
		t.Fatalf("expected one redundancy warning, got %v", wildcardFirst.Warnings)
	}
	w := wildcardFirst.Warnings[0]
	if w.Code != diagnostics.WarnW001 || w.ArmIndex != 2 {
		t.Fatalf("expected W001 on arm 2, got %v (arm %d)", w.Code, w.ArmIndex)
	}

	wildcardLast := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(ctorPat("Circle", wildcard()), intLit("1")),
			arm(wildcard(), intLit("2")),
		)),
	)
	assertOK(t, wildcardLast)
	if len(wildcardLast.Warnings) != 0 {
		t.Fatalf("no arm is redundant here: %v", wildcardLast.Warnings)
	}
}

func TestGuardedArmDoesNotCount(t *testing.T) {
	// [Circle(_) when g, _] is exhaustive: the wildcard discharges coverage.
	covered := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			guardedArm(ctorPat("Circle", identPat("r")), binary(">", ident("r"), intLit("0")), intLit("1")),
			arm(wildcard(), intLit("2")),
		)),
	)
	assertOK(t, covered)

	// [Circle(_) when g, Point] is NOT exhaustive: the guard cannot be
	// assumed to match, so Circle(_) is uncovered.
	uncovered := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			guardedArm(ctorPat("Circle", identPat("r")), binary(">", ident("r"), intLit("0")), intLit("1")),
			arm(ctorPat("Point"), intLit("2")),
		)),
	)
	d := assertCode(t, uncovered, diagnostics.ErrT007)
	if len(d.Witnesses) != 1 || d.Witnesses[0] != "Circle(_)" {
		t.Fatalf("expected witness Circle(_), got %v", d.Witnesses)
	}
}

func TestNestedExhaustiveness(t *testing.T) {
	// Option<Shape>: [Some(Circle(_)), None] misses Some(Point).
	missing := check(t,
		shapeDecl(),
		fnDecl("f", []string{"o"}, &ast.BlockExpression{
			Sp: sp(),
			Declarations: []ast.Declaration{
				&ast.ExpressionStatement{Expression: binary("==",
					ident("o"), call(ident("Some"), ident("Point")))},
			},
			Tail: match(ident("o"),
				arm(ctorPat("Some", ctorPat("Circle", wildcard())), intLit("1")),
				arm(ctorPat("None"), intLit("2")),
			),
		}),
	)
	d := assertCode(t, missing, diagnostics.ErrT007)
	if len(d.Witnesses) != 1 || d.Witnesses[0] != "Some(Point)" {
		t.Fatalf("expected witness Some(Point), got %v", d.Witnesses)
	}

	complete := check(t,
		shapeDecl(),
		fnDecl("f", []string{"o"}, &ast.BlockExpression{
			Sp: sp(),
			Declarations: []ast.Declaration{
				&ast.ExpressionStatement{Expression: binary("==",
					ident("o"), call(ident("Some"), ident("Point")))},
			},
			Tail: match(ident("o"),
				arm(ctorPat("Some", ctorPat("Circle", wildcard())), intLit("1")),
				arm(ctorPat("Some", ctorPat("Point")), intLit("2")),
				arm(ctorPat("None"), intLit("3")),
			),
		}),
	)
	assertOK(t, complete)
}

func TestOrPatternBindingConsistency(t *testing.T) {
	twoVariant := sumDecl("Either", nil,
		variant("A", namedType(config.IntTypeName)),
		variant("B", namedType(config.IntTypeName)))

	accepted := check(t,
		twoVariant,
		fnDecl("f", []string{"e"}, match(ident("e"),
			arm(orPattern(ctorPat("A", identPat("x")), ctorPat("B", identPat("x"))), ident("x")),
		)),
	)
	assertOK(t, accepted)

	rejected := check(t,
		twoVariant,
		fnDecl("f", []string{"e"}, match(ident("e"),
			arm(orPattern(ctorPat("A", identPat("x")), ctorPat("B", identPat("y"))), intLit("0")),
		)),
	)
	assertCode(t, rejected, diagnostics.ErrT006)
}

func TestOrPatternExhaustiveness(t *testing.T) {
	res := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(orPattern(ctorPat("Circle", wildcard()), ctorPat("Point")), intLit("1")),
		)),
	)
	assertOK(t, res)
}

func TestGuardValidation(t *testing.T) {
	shape := shapeDecl()

	allowedCall := check(t,
		shape,
		fnDecl("f", []string{"s"}, match(ident("s"),
			guardedArm(ctorPat("Circle", identPat("r")),
				binary(">", call(ident("abs"), ident("r")), intLit("0")), intLit("1")),
			arm(wildcard(), intLit("2")),
		)),
	)
	assertOK(t, allowedCall)

	forbiddenCall := check(t,
		shape,
		fnDecl("big", []string{"x"}, binary(">", ident("x"), intLit("10"))),
		fnDecl("f", []string{"s"}, match(ident("s"),
			guardedArm(ctorPat("Circle", identPat("r")), call(ident("big"), ident("r")), intLit("1")),
			arm(wildcard(), intLit("2")),
		)),
	)
	assertCode(t, forbiddenCall, diagnostics.ErrT008)

	nonBoolGuard := check(t,
		shape,
		fnDecl("f", []string{"s"}, match(ident("s"),
			guardedArm(ctorPat("Circle", identPat("r")), binary("+", ident("r"), intLit("1")), intLit("1")),
			arm(wildcard(), intLit("2")),
		)),
	)
	assertCode(t, nonBoolGuard, diagnostics.ErrT009)
}

func TestIdempotentRecheck(t *testing.T) {
	build := func() *ast.Program {
		return program(
			shapeDecl(),
			fnDecl("f", []string{"s"}, match(ident("s"),
				arm(wildcard(), intLit("1")),
				arm(ctorPat("Circle", wildcard()), intLit("2")),
				arm(ctorPat("Point"), intLit("3")),
			)),
		)
	}
	first := CheckUnit(build(), nil)
	second := CheckUnit(build(), nil)
	if len(first.Warnings) != len(second.Warnings) {
		t.Fatalf("re-check changed warnings: %d vs %d", len(first.Warnings), len(second.Warnings))
	}
	for i := range first.Warnings {
		if first.Warnings[i].ArmIndex != second.Warnings[i].ArmIndex {
			t.Fatalf("re-check changed arm indices")
		}
	}
	if first.UnitID == second.UnitID {
		t.Fatal("each checked unit needs a distinct id")
	}
}

func TestRecursiveTypeDepthLimit(t *testing.T) {
	// type Nat = Succ(Nat) | Zero — without the depth bound, witness
	// enumeration would never terminate.
	nat := sumDecl("Nat", nil,
		variant("Succ", namedType("Nat")),
		variant("Zero"))

	res := check(t,
		nat,
		fnDecl("f", []string{"n"}, match(ident("n"),
			arm(ctorPat("Zero"), intLit("0")),
			arm(ctorPat("Succ", ctorPat("Zero")), intLit("1")),
			arm(ctorPat("Succ", ctorPat("Succ", wildcard())), intLit("2")),
		)),
	)
	assertOK(t, res)

	// Past the configured depth the structure is opaque, so a deep match
	// without a wildcard is reported rather than looping.
	shallow := CheckUnit(program(
		sumDecl("Nat", nil,
			variant("Succ", namedType("Nat")),
			variant("Zero")),
		fnDecl("f", []string{"n"}, match(ident("n"),
			arm(ctorPat("Zero"), intLit("0")),
		)),
	), &config.Config{MatchDepthLimit: 2, GuardAllowList: config.DefaultGuardAllowList})
	assertCode(t, shallow, diagnostics.ErrT007)
}

func TestDestructuringLetMustBeIrrefutable(t *testing.T) {
	ok := check(t,
		&ast.LetDeclaration{Sp: sp(),
			Pattern: &ast.TuplePattern{Sp: sp(), Elements: []ast.Pattern{identPat("a"), identPat("b")}},
			Value: &ast.TupleExpression{Sp: sp(),
				Elements: []ast.Expression{intLit("1"), boolLit("true")}}},
	)
	assertOK(t, ok)

	refutable := check(t,
		shapeDecl(),
		&ast.LetDeclaration{Sp: sp(),
			Pattern: ctorPat("Circle", identPat("r")),
			Value:   call(ident("Circle"), intLit("1"))},
	)
	assertCode(t, refutable, diagnostics.ErrT007)
}

func TestTupleMatchExhaustiveness(t *testing.T) {
	// (Bool, Bool) scrutinee: all four combinations or a wildcard needed.
	mk := func(arms ...*ast.MatchArm) *ast.Program {
		return program(fnDecl("f", []string{"a", "b"},
			match(&ast.TupleExpression{Sp: sp(),
				Elements: []ast.Expression{
					binary("==", ident("a"), intLit("0")),
					binary("==", ident("b"), intLit("0")),
				}}, arms...)))
	}

	partial := CheckUnit(mk(
		arm(&ast.TuplePattern{Sp: sp(), Elements: []ast.Pattern{boolPat("true"), boolPat("true")}}, intLit("1")),
	), nil)
	assertCode(t, partial, diagnostics.ErrT007)

	full := CheckUnit(mk(
		arm(&ast.TuplePattern{Sp: sp(), Elements: []ast.Pattern{boolPat("true"), wildcard()}}, intLit("1")),
		arm(&ast.TuplePattern{Sp: sp(), Elements: []ast.Pattern{boolPat("false"), wildcard()}}, intLit("2")),
	), nil)
	assertOK(t, full)
}

func TestStructFieldAccess(t *testing.T) {
	boxDecl := func() *ast.StructDeclaration {
		return &ast.StructDeclaration{Sp: sp(), Name: "Box", TypeParams: []string{"a"},
			Fields: []*ast.FieldDecl{
				{Sp: sp(), Name: "value", Type: namedType("a")},
				{Sp: sp(), Name: "tag", Type: namedType(config.StringTypeName)},
			}}
	}

	res := check(t,
		boxDecl(),
		letDecl("b", call(ident("Box"), intLit("1"), strLit("t"))),
		letDecl("v", field(ident("b"), "value")),
		letDecl("g", field(ident("b"), "tag")),
	)
	assertOK(t, res)
	if got := res.Schemes["b"].Body.String(); got != "Box<Int>" {
		t.Fatalf("b: %s", got)
	}
	if got := res.Schemes["v"].Body.String(); got != "Int" {
		t.Fatalf("v: %s", got)
	}
	if got := res.Schemes["g"].Body.String(); got != "String" {
		t.Fatalf("g: %s", got)
	}

	missing := check(t,
		boxDecl(),
		letDecl("b", call(ident("Box"), intLit("1"), strLit("t"))),
		letDecl("x", field(ident("b"), "missing")),
	)
	assertCode(t, missing, diagnostics.ErrT012)
}

func TestUnknownFieldTypeReported(t *testing.T) {
	res := check(t,
		sumDecl("Bad", nil, variant("Only", namedType("NoSuchType"))),
	)
	assertCode(t, res, diagnostics.ErrT011)
}

func TestForwardTypeReference(t *testing.T) {
	// Tree references Forest before Forest is declared.
	res := check(t,
		sumDecl("Tree", nil,
			variant("Node", namedType("Forest")),
			variant("Leaf")),
		sumDecl("Forest", nil,
			variant("Cons", namedType("Tree"), namedType("Forest")),
			variant("Nil")),
	)
	assertOK(t, res)
}

func TestStatsAndUnitID(t *testing.T) {
	res := check(t,
		shapeDecl(),
		fnDecl("f", []string{"s"}, match(ident("s"),
			arm(ctorPat("Circle", wildcard()), intLit("1")),
			arm(ctorPat("Point"), intLit("2")),
		)),
	)
	assertOK(t, res)
	if res.Stats.Declarations != 2 {
		t.Fatalf("declarations = %d", res.Stats.Declarations)
	}
	if res.Stats.Expressions == 0 || res.Stats.Patterns == 0 {
		t.Fatalf("stats not collected: %+v", res.Stats)
	}
	if res.UnitID == uuid.Nil {
		t.Fatal("unit id not assigned")
	}
}

func TestTypedOutputCoversMatchNodes(t *testing.T) {
	scrut := ident("s")
	pat := ctorPat("Circle", identPat("r"))
	m := match(scrut, arm(pat, ident("r")), arm(ctorPat("Point"), intLit("0")))
	res := check(t, shapeDecl(), fnDecl("f", []string{"s"}, m))
	assertOK(t, res)

	if got, ok := res.Types[scrut]; !ok || got.String() != "Shape" {
		t.Fatalf("scrutinee type: %v %v", got, ok)
	}
	if got, ok := res.Types[pat]; !ok || got.String() != "Shape" {
		t.Fatalf("pattern type: %v %v", got, ok)
	}
	if got, ok := res.Types[m]; !ok || got.String() != "Int" {
		t.Fatalf("match type: %v %v", got, ok)
	}
}

func TestMaxErrorsStopsCollection(t *testing.T) {
	cfg := &config.Config{
		MatchDepthLimit: config.DefaultMatchDepthLimit,
		GuardAllowList:  config.DefaultGuardAllowList,
		MaxErrors:       1,
	}
	res := CheckUnit(program(
		letDecl("a", ident("missing1")),
		letDecl("b", ident("missing2")),
		letDecl("c", ident("missing3")),
	), cfg)
	if len(res.Errors) != 1 {
		t.Fatalf("expected collection to stop at 1 error, got %d", len(res.Errors))
	}
}
