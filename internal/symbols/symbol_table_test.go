package symbols

import (
	"testing"

	"github.com/snow-lang/snow/internal/typesystem"
)

func TestDefineAndFind(t *testing.T) {
	table := NewSymbolTable()
	table.Define("x", typesystem.Mono(typesystem.Int), nil)

	sym, ok := table.Find("x")
	if !ok {
		t.Fatal("x not found")
	}
	if sym.Kind != VariableSymbol {
		t.Fatalf("expected variable symbol, got %v", sym.Kind)
	}
	if sym.Scheme.Body.String() != "Int" {
		t.Fatalf("expected Int, got %s", sym.Scheme.Body)
	}
}

func TestEnclosedScopeShadowsOuter(t *testing.T) {
	outer := NewSymbolTable()
	outer.Define("x", typesystem.Mono(typesystem.Int), nil)

	inner := NewEnclosedSymbolTable(outer)
	inner.Define("x", typesystem.Mono(typesystem.Bool), nil)

	sym, _ := inner.Find("x")
	if sym.Scheme.Body.String() != "Bool" {
		t.Fatalf("inner scope did not shadow: %s", sym.Scheme.Body)
	}

	// Defining in the child never leaks into the parent.
	sym, _ = outer.Find("x")
	if sym.Scheme.Body.String() != "Int" {
		t.Fatalf("outer binding mutated: %s", sym.Scheme.Body)
	}
}

func TestFindWalksOuterChain(t *testing.T) {
	root := NewSymbolTable()
	root.Define("x", typesystem.Mono(typesystem.Int), nil)
	mid := NewEnclosedSymbolTable(root)
	leaf := NewEnclosedSymbolTable(mid)

	if _, ok := leaf.Find("x"); !ok {
		t.Fatal("x not visible two scopes down")
	}
	if leaf.IsDefinedLocally("x") {
		t.Fatal("x should not be local to the leaf scope")
	}
}

func TestNamesPreserveInsertionOrder(t *testing.T) {
	table := NewSymbolTable()
	for _, n := range []string{"c", "a", "b"} {
		table.Define(n, typesystem.Mono(typesystem.Int), nil)
	}
	got := table.Names()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("insertion order lost: got %v", got)
		}
	}
}

func TestSharedRegistryAcrossScopes(t *testing.T) {
	root := NewSymbolTable()
	child := NewEnclosedSymbolTable(root)
	if root.Registry() != child.Registry() {
		t.Fatal("child scope does not share the registry")
	}
}

func TestClassify(t *testing.T) {
	table := NewSymbolTable()
	table.Define("x", typesystem.Mono(typesystem.Int), nil)
	table.DefineType("Shape", typesystem.Mono(typesystem.TCon{Name: "Shape"}), nil)
	table.DefineConstructor("Point", typesystem.Mono(typesystem.TCon{Name: "Shape"}), nil)

	cases := []struct {
		name string
		want NameClass
	}{
		{"x", NameValue},
		{"Shape", NameType},
		{"Point", NameConstructor},
		{"missing", NameUnresolved},
	}
	for _, tc := range cases {
		if got := table.Classify(tc.name); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveQualifiedConstructor(t *testing.T) {
	table := NewSymbolTable()
	scheme := typesystem.Mono(typesystem.TCon{Name: "Shape"})
	table.DefineConstructor("Point", scheme, nil)
	table.DefineConstructor(QualifiedName("Shape", "Point"), scheme, nil)

	got, ok := table.ResolveQualifiedConstructor("Shape", "Point")
	if !ok {
		t.Fatal("qualified lookup failed")
	}
	bare, _ := table.ResolveConstructor("Point")
	if got != bare {
		t.Fatal("qualified and bare lookups resolve different schemes")
	}

	if _, ok := table.ResolveQualifiedConstructor("Shape", "Square"); ok {
		t.Fatal("unknown variant resolved")
	}
}

func TestIsNullaryConstructor(t *testing.T) {
	table := NewSymbolTable()
	table.DefineConstructor("Point", typesystem.Mono(typesystem.TCon{Name: "Shape"}), nil)
	table.DefineConstructor("Circle", typesystem.Mono(typesystem.TFunc{
		Params:     []typesystem.Type{typesystem.Int},
		ReturnType: typesystem.TCon{Name: "Shape"},
	}), nil)
	table.Define("x", typesystem.Mono(typesystem.Int), nil)

	if !table.IsNullaryConstructor("Point") {
		t.Fatal("Point should be nullary")
	}
	if table.IsNullaryConstructor("Circle") {
		t.Fatal("Circle takes a field")
	}
	if table.IsNullaryConstructor("x") {
		t.Fatal("x is a variable")
	}
}

func TestSumTypeDefFieldTypes(t *testing.T) {
	ctx := typesystem.NewInferContext()
	a := ctx.FreshVar()
	def := &SumTypeDef{
		Name:       "Option",
		TypeParams: []string{"a"},
		ParamVars:  []typesystem.TVar{a},
		Variants: []VariantDef{
			{Name: "Some", Fields: []VariantField{{Type: a}}},
			{Name: "None"},
		},
	}

	fts, ok := def.FieldTypes("Some", []typesystem.Type{typesystem.Int})
	if !ok || len(fts) != 1 {
		t.Fatalf("FieldTypes failed: %v %v", fts, ok)
	}
	if fts[0].String() != "Int" {
		t.Fatalf("parameter not substituted: %s", fts[0])
	}

	fts, ok = def.FieldTypes("None", nil)
	if !ok || len(fts) != 0 {
		t.Fatalf("nullary variant: %v %v", fts, ok)
	}

	if _, ok := def.FieldTypes("Missing", nil); ok {
		t.Fatal("unknown variant resolved")
	}
}

func TestStructDefFieldType(t *testing.T) {
	ctx := typesystem.NewInferContext()
	a := ctx.FreshVar()
	def := &StructDef{
		Name:       "Box",
		TypeParams: []string{"a"},
		ParamVars:  []typesystem.TVar{a},
		Fields: []VariantField{
			{Name: "value", Type: a},
			{Name: "tag", Type: typesystem.String},
		},
	}

	ft, ok := def.FieldType("value", []typesystem.Type{typesystem.Bool})
	if !ok || ft.String() != "Bool" {
		t.Fatalf("field instantiation failed: %v %v", ft, ok)
	}
	ft, ok = def.FieldType("tag", []typesystem.Type{typesystem.Bool})
	if !ok || ft.String() != "String" {
		t.Fatalf("concrete field: %v %v", ft, ok)
	}
	if _, ok := def.FieldType("missing", nil); ok {
		t.Fatal("unknown field resolved")
	}
}
