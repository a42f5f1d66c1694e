package analyzer

import (
	"github.com/google/uuid"

	"github.com/snow-lang/snow/internal/ast"
	"github.com/snow-lang/snow/internal/config"
	"github.com/snow-lang/snow/internal/diagnostics"
	"github.com/snow-lang/snow/internal/symbols"
	"github.com/snow-lang/snow/internal/typesystem"
)

// Stats is the per-unit bookkeeping completed even when checking fails.
type Stats struct {
	Declarations int
	Expressions  int
	Patterns     int
}

// Result is the outcome of checking one compilation unit. On failure Types
// is nil (no valid typed output), but Stats and Warnings are still complete.
type Result struct {
	// UnitID correlates diagnostics from concurrently checked units.
	UnitID   uuid.UUID
	File     string
	Types    map[ast.Node]typesystem.Type
	Schemes  map[string]*typesystem.Scheme
	Errors   []*diagnostics.Diagnostic
	Warnings []*diagnostics.Diagnostic
	Stats    Stats
}

// Failed reports whether the unit produced any hard error.
func (r *Result) Failed() bool { return len(r.Errors) > 0 }

// walker carries the mutable state of one checking pass. One walker per
// compilation unit; the inference context and symbol table are owned by it
// and never shared across units.
type walker struct {
	ctx      *typesystem.InferContext
	table    *symbols.SymbolTable
	cfg      *config.Config
	typeMap  map[ast.Node]typesystem.Type
	schemes  map[string]*typesystem.Scheme
	errors   []*diagnostics.Diagnostic
	warnings []*diagnostics.Diagnostic
	stats    Stats
	// paramCounts records declared type-parameter counts during the
	// predeclaration pass so field types can arity-check forward
	// references.
	paramCounts map[string]int
}

func (w *walker) addError(d *diagnostics.Diagnostic) {
	w.errors = append(w.errors, d)
}

func (w *walker) addWarning(d *diagnostics.Diagnostic) {
	w.warnings = append(w.warnings, d)
}

// errorBudgetExceeded reports whether MaxErrors has been reached.
func (w *walker) errorBudgetExceeded() bool {
	return w.cfg.MaxErrors > 0 && len(w.errors) >= w.cfg.MaxErrors
}

// CheckUnit type-checks one compilation unit. Declarations are processed in
// two passes: all type declarations are registered first (permitting forward
// and mutual reference), then every body is inferred in program order.
func CheckUnit(program *ast.Program, cfg *config.Config) *Result {
	if cfg == nil {
		cfg = config.Default()
	}

	ctx := typesystem.NewInferContext()
	table := symbols.NewSymbolTable()
	RegisterBuiltins(ctx, table)

	w := &walker{
		ctx:         ctx,
		table:       table,
		cfg:         cfg,
		typeMap:     make(map[ast.Node]typesystem.Type),
		schemes:     make(map[string]*typesystem.Scheme),
		paramCounts: make(map[string]int),
	}
	for _, name := range []string{
		config.IntTypeName, config.FloatTypeName, config.StringTypeName,
		config.CharTypeName, config.BoolTypeName, config.UnitTypeName,
	} {
		w.paramCounts[name] = 0
	}
	w.paramCounts[config.OptionTypeName] = 1
	w.paramCounts[config.ResultTypeName] = 2

	// Pass 1a: predeclare every type name so fields may reference types
	// declared later in the unit.
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.SumTypeDeclaration:
			w.predeclareType(d.Name, len(d.TypeParams), d)
		case *ast.StructDeclaration:
			w.predeclareType(d.Name, len(d.TypeParams), d)
		}
	}

	// Pass 1b: register variants, fields, and constructor schemes.
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.SumTypeDeclaration:
			w.registerSumType(d, table)
		case *ast.StructDeclaration:
			w.registerStruct(d, table)
		}
	}

	// Pass 2: infer bodies in program order.
	for _, decl := range program.Declarations {
		if w.errorBudgetExceeded() {
			break
		}
		w.checkDeclaration(decl, table)
	}

	res := &Result{
		UnitID:   uuid.New(),
		File:     program.File,
		Schemes:  w.schemes,
		Errors:   w.errors,
		Warnings: w.warnings,
		Stats:    w.stats,
	}

	// A failed unit completes its bookkeeping but yields no typed output.
	if len(w.errors) == 0 {
		resolved := make(map[ast.Node]typesystem.Type, len(w.typeMap))
		for n, t := range w.typeMap {
			resolved[n] = ctx.Resolve(t)
		}
		res.Types = resolved
	}

	return res
}

// checkDeclaration infers one top-level declaration, recording errors
// without attempting recovery inside the construct.
func (w *walker) checkDeclaration(decl ast.Declaration, table *symbols.SymbolTable) {
	w.stats.Declarations++
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		if err := w.checkFunction(d, table); err != nil {
			w.addError(err)
		}
	case *ast.LetDeclaration:
		if err := w.checkLet(d, table); err != nil {
			w.addError(err)
		}
	case *ast.ExpressionStatement:
		ty, err := w.inferExpr(d.Expression, table)
		if err != nil {
			w.addError(err)
			return
		}
		w.typeMap[d.Expression] = ty
	case *ast.SumTypeDeclaration, *ast.StructDeclaration:
		// Registered in pass 1.
	}
}
