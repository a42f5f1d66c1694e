package symbols

import (
	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/typesystem"
)

// VariantField is one positional or named field of a variant. The type may
// reference the owning definition's parameter variables.
type VariantField struct {
	Name string
	Type typesystem.Type
}

// VariantDef is one variant of a registered sum type.
type VariantDef struct {
	Name   string
	Fields []VariantField
}

// Arity returns the number of fields.
func (v *VariantDef) Arity() int { return len(v.Fields) }

// SumTypeDef is an immutable record of a declared sum type. ParamVars holds
// the template type variables standing for TypeParams, in order; field types
// inside Variants reference them. Instantiating a variant's fields for a
// concrete application substitutes ParamVars with the application's
// arguments.
type SumTypeDef struct {
	Name       string
	TypeParams []string
	ParamVars  []typesystem.TVar
	Variants   []VariantDef
	Decl       ast.Node
}

// Variant returns the named variant, if any.
func (d *SumTypeDef) Variant(name string) (*VariantDef, bool) {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

// FieldTypes returns the variant's field types with the definition's
// parameter variables replaced by args. len(args) must equal the parameter
// count; the caller has already unified arities.
func (d *SumTypeDef) FieldTypes(variant string, args []typesystem.Type) ([]typesystem.Type, bool) {
	v, ok := d.Variant(variant)
	if !ok {
		return nil, false
	}
	subst := make(typesystem.Subst, len(d.ParamVars))
	for i, pv := range d.ParamVars {
		if i < len(args) {
			subst[pv.ID] = args[i]
		}
	}
	types := make([]typesystem.Type, len(v.Fields))
	for i, f := range v.Fields {
		types[i] = f.Type.Apply(subst)
	}
	return types, true
}

// StructDef is an immutable record of a declared struct type. Ctor is the
// record-constructor scheme, taking the fields in declaration order; it is
// kept here rather than in the environment so the struct's name keeps
// denoting a type.
type StructDef struct {
	Name       string
	TypeParams []string
	ParamVars  []typesystem.TVar
	Fields     []VariantField
	Ctor       *typesystem.Scheme
	Decl       ast.Node
}

// FieldType returns the named field's type with parameter variables replaced
// by args.
func (d *StructDef) FieldType(field string, args []typesystem.Type) (typesystem.Type, bool) {
	for _, f := range d.Fields {
		if f.Name == field {
			subst := make(typesystem.Subst, len(d.ParamVars))
			for i, pv := range d.ParamVars {
				if i < len(args) {
					subst[pv.ID] = args[i]
				}
			}
			return f.Type.Apply(subst), true
		}
	}
	return nil, false
}

// Registry records every declared algebraic type of a compilation unit,
// keyed by name so recursive and mutually recursive definitions reference
// each other through the name rather than through structural embedding.
// Definitions are immutable once added.
type Registry struct {
	sums    map[string]*SumTypeDef
	structs map[string]*StructDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sums:    make(map[string]*SumTypeDef),
		structs: make(map[string]*StructDef),
	}
}

// AddSumType records a sum type definition.
func (r *Registry) AddSumType(def *SumTypeDef) { r.sums[def.Name] = def }

// AddStruct records a struct definition.
func (r *Registry) AddStruct(def *StructDef) { r.structs[def.Name] = def }

// SumType returns the named sum type definition, if registered.
func (r *Registry) SumType(name string) (*SumTypeDef, bool) {
	d, ok := r.sums[name]
	return d, ok
}

// Struct returns the named struct definition, if registered.
func (r *Registry) Struct(name string) (*StructDef, bool) {
	d, ok := r.structs[name]
	return d, ok
}

// IsType reports whether the name is a registered sum or struct type.
func (r *Registry) IsType(name string) bool {
	if _, ok := r.sums[name]; ok {
		return true
	}
	_, ok := r.structs[name]
	return ok
}

// QualifiedName joins a type and variant name the way the environment keys
// qualified constructors.
func QualifiedName(typeName, variantName string) string {
	return typeName + "." + variantName
}

// ResolveQualifiedConstructor is the single lookup used by both
// construction-site and pattern-site resolution, so a constructor types
// identically in both directions.
func (s *SymbolTable) ResolveQualifiedConstructor(typeName, variantName string) (*typesystem.Scheme, bool) {
	sym, ok := s.Find(QualifiedName(typeName, variantName))
	if !ok || sym.Kind != ConstructorSymbol {
		return nil, false
	}
	return sym.Scheme, true
}

// ResolveConstructor resolves an unqualified constructor name.
func (s *SymbolTable) ResolveConstructor(name string) (*typesystem.Scheme, bool) {
	sym, ok := s.Find(name)
	if !ok || sym.Kind != ConstructorSymbol {
		return nil, false
	}
	return sym.Scheme, true
}

// IsNullaryConstructor reports whether name resolves to a registered
// constructor that takes no fields. Pattern typing consults this before
// treating a bare identifier as a fresh binding.
func (s *SymbolTable) IsNullaryConstructor(name string) bool {
	sym, ok := s.Find(name)
	if !ok || sym.Kind != ConstructorSymbol {
		return false
	}
	_, isFunc := sym.Scheme.Body.(typesystem.TFunc)
	return !isFunc
}
