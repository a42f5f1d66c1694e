package analyzer

import (
	"github.com/snow-lang/snow/internal/config"
	"github.com/snow-lang/snow/internal/symbols"
	"github.com/snow-lang/snow/internal/typesystem"
)

// RegisterBuiltins seeds a fresh environment with the primitive types, the
// Option and Result prelude types, and the pure prelude functions that match
// guards are allowed to call.
func RegisterBuiltins(ctx *typesystem.InferContext, table *symbols.SymbolTable) {
	for _, name := range []string{
		config.IntTypeName,
		config.FloatTypeName,
		config.StringTypeName,
		config.CharTypeName,
		config.BoolTypeName,
		config.UnitTypeName,
	} {
		table.DefineType(name, typesystem.Mono(typesystem.TCon{Name: name}), nil)
	}

	registerBuiltinSum(ctx, table, config.OptionTypeName, []string{"a"}, []builtinVariant{
		{name: config.SomeCtorName, fields: []int{0}},
		{name: config.NoneCtorName},
	})
	registerBuiltinSum(ctx, table, config.ResultTypeName, []string{"a", "e"}, []builtinVariant{
		{name: config.OkCtorName, fields: []int{0}},
		{name: config.ErrCtorName, fields: []int{1}},
	})

	// Pure prelude functions. Their names double as the default guard
	// allow-list.
	define := func(name string, params []typesystem.Type, ret typesystem.Type) {
		table.Define(name, typesystem.Mono(typesystem.TFunc{Params: params, ReturnType: ret}), nil)
	}
	define("abs", []typesystem.Type{typesystem.Int}, typesystem.Int)
	define("len", []typesystem.Type{typesystem.String}, typesystem.Int)
	define("min", []typesystem.Type{typesystem.Int, typesystem.Int}, typesystem.Int)
	define("max", []typesystem.Type{typesystem.Int, typesystem.Int}, typesystem.Int)
	define("not", []typesystem.Type{typesystem.Bool}, typesystem.Bool)
}

// builtinVariant describes one prelude variant; fields index into the
// owning type's parameter list.
type builtinVariant struct {
	name   string
	fields []int
}

// registerBuiltinSum installs a prelude sum type through the same level and
// generalization discipline user declarations go through.
func registerBuiltinSum(ctx *typesystem.InferContext, table *symbols.SymbolTable, name string, params []string, variants []builtinVariant) {
	ctx.EnterLevel()

	paramVars := make([]typesystem.TVar, len(params))
	args := make([]typesystem.Type, len(params))
	for i := range params {
		v := ctx.FreshVar()
		paramVars[i] = v
		args[i] = v
	}
	resultTy := typesystem.Type(typesystem.TApp{Constructor: typesystem.TCon{Name: name}, Args: args})

	def := &symbols.SumTypeDef{Name: name, TypeParams: params, ParamVars: paramVars}
	type pending struct {
		variant string
		ctorTy  typesystem.Type
	}
	var ctors []pending
	for _, v := range variants {
		fields := make([]symbols.VariantField, len(v.fields))
		fieldTypes := make([]typesystem.Type, len(v.fields))
		for i, pi := range v.fields {
			fields[i] = symbols.VariantField{Type: paramVars[pi]}
			fieldTypes[i] = paramVars[pi]
		}
		def.Variants = append(def.Variants, symbols.VariantDef{Name: v.name, Fields: fields})

		ctorTy := resultTy
		if len(fieldTypes) > 0 {
			ctorTy = typesystem.TFunc{Params: fieldTypes, ReturnType: resultTy}
		}
		ctors = append(ctors, pending{variant: v.name, ctorTy: ctorTy})
	}

	ctx.LeaveLevel()

	for _, c := range ctors {
		scheme := ctx.Generalize(c.ctorTy)
		table.DefineConstructor(c.variant, scheme, nil)
		table.DefineConstructor(symbols.QualifiedName(name, c.variant), scheme, nil)
	}

	table.DefineType(name, typesystem.Mono(typesystem.TCon{Name: name}), nil)
	table.Registry().AddSumType(def)
}
