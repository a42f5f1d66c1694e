package symbols

import (
	"github.com/benbjohnson/immutable"

	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/typesystem"
)

// SymbolKind classifies what a name denotes. The lowering layer keys codegen
// strategy (ordinary call vs. value construction) on this.
type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	TypeSymbol
	ConstructorSymbol
)

// Symbol is one environment entry.
type Symbol struct {
	Name   string
	Scheme *typesystem.Scheme
	Kind   SymbolKind
	// DefinitionNode points at the declaring AST node, used for related
	// spans in duplicate-definition diagnostics. Nil for builtins.
	DefinitionNode ast.Node
}

// SymbolTable is a lexically scoped environment mapping names to schemes.
// Each scope is a persistent map, so defining a name produces a new map and
// a child scope can never mutate its parent. Insertion order is recorded per
// scope for deterministic iteration.
type SymbolTable struct {
	outer    *SymbolTable
	store    *immutable.Map
	order    []string
	registry *Registry
}

// NewSymbolTable creates a root environment with a fresh type registry.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		store:    immutable.NewMap(nil),
		registry: NewRegistry(),
	}
}

// NewEnclosedSymbolTable creates a child scope that shadows, and shares the
// registry of, the outer scope.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{
		outer:    outer,
		store:    immutable.NewMap(nil),
		registry: outer.registry,
	}
}

// Registry returns the algebraic type registry shared by every scope of the
// compilation unit.
func (s *SymbolTable) Registry() *Registry { return s.registry }

// Outer returns the enclosing scope, or nil at the root.
func (s *SymbolTable) Outer() *SymbolTable { return s.outer }

// Define inserts a value binding into the current scope, shadowing any outer
// binding of the same name.
func (s *SymbolTable) Define(name string, scheme *typesystem.Scheme, node ast.Node) {
	s.insert(Symbol{Name: name, Scheme: scheme, Kind: VariableSymbol, DefinitionNode: node})
}

// DefineType inserts a type name into the current scope.
func (s *SymbolTable) DefineType(name string, scheme *typesystem.Scheme, node ast.Node) {
	s.insert(Symbol{Name: name, Scheme: scheme, Kind: TypeSymbol, DefinitionNode: node})
}

// DefineConstructor inserts a variant constructor into the current scope.
func (s *SymbolTable) DefineConstructor(name string, scheme *typesystem.Scheme, node ast.Node) {
	s.insert(Symbol{Name: name, Scheme: scheme, Kind: ConstructorSymbol, DefinitionNode: node})
}

func (s *SymbolTable) insert(sym Symbol) {
	if _, ok := s.store.Get(sym.Name); !ok {
		s.order = append(s.order, sym.Name)
	}
	s.store = s.store.Set(sym.Name, sym)
}

// Find looks a name up, searching from the innermost scope outward.
func (s *SymbolTable) Find(name string) (Symbol, bool) {
	if v, ok := s.store.Get(name); ok {
		return v.(Symbol), true
	}
	if s.outer != nil {
		return s.outer.Find(name)
	}
	return Symbol{}, false
}

// IsDefinedLocally reports whether the name exists in this scope only.
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store.Get(name)
	return ok
}

// Names returns this scope's names in insertion order.
func (s *SymbolTable) Names() []string {
	return append([]string(nil), s.order...)
}

// NameClass is the answer the lowering layer needs for any identifier.
type NameClass int

const (
	NameUnresolved NameClass = iota
	NameValue
	NameConstructor
	NameType
)

// Classify reports whether a name denotes a value, a constructor, a type, or
// is unresolved. Qualified names use the Type.Variant form.
func (s *SymbolTable) Classify(name string) NameClass {
	sym, ok := s.Find(name)
	if !ok {
		return NameUnresolved
	}
	switch sym.Kind {
	case ConstructorSymbol:
		return NameConstructor
	case TypeSymbol:
		return NameType
	default:
		return NameValue
	}
}
