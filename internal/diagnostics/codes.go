package diagnostics

// ErrorCode is a stable machine-readable diagnostic code. Codes never change
// meaning between releases; tooling keys on them.
type ErrorCode string

const (
	// ErrT001 — two incompatible concrete types.
	ErrT001 ErrorCode = "T001"
	// ErrT002 — occurs-check failure (infinite type).
	ErrT002 ErrorCode = "T002"
	// ErrT003 — unknown name.
	ErrT003 ErrorCode = "T003"
	// ErrT004 — unknown variant.
	ErrT004 ErrorCode = "T004"
	// ErrT005 — constructor or function applied to the wrong number of arguments.
	ErrT005 ErrorCode = "T005"
	// ErrT006 — or-pattern alternatives bind different names.
	ErrT006 ErrorCode = "T006"
	// ErrT007 — non-exhaustive match.
	ErrT007 ErrorCode = "T007"
	// ErrT008 — guard expression uses disallowed constructs.
	ErrT008 ErrorCode = "T008"
	// ErrT009 — guard expression is not Bool.
	ErrT009 ErrorCode = "T009"
	// ErrT010 — duplicate definition in the same scope.
	ErrT010 ErrorCode = "T010"
	// ErrT011 — unknown type in an annotation or field.
	ErrT011 ErrorCode = "T011"
	// ErrT012 — field access on a type without that field.
	ErrT012 ErrorCode = "T012"
	// WarnW001 — redundant (unreachable) match arm.
	WarnW001 ErrorCode = "W001"
)

// messages holds the format template for each code. Codes not listed here
// fall back to printing the arguments verbatim.
var messages = map[ErrorCode]string{
	ErrT001:  "type mismatch: expected `%s`, found `%s`",
	ErrT002:  "infinite type: `%s` occurs in `%s`",
	ErrT003:  "unknown name `%s`",
	ErrT004:  "unknown variant `%s`",
	ErrT005:  "arity mismatch: expected %d arguments, found %d",
	ErrT006:  "or-pattern alternatives bind different names: [%s] vs [%s]",
	ErrT007:  "non-exhaustive match on `%s`: missing patterns [%s]",
	ErrT008:  "invalid guard expression: %s",
	ErrT009:  "guard expression must be `Bool`, found `%s`",
	ErrT010:  "`%s` is already defined in this scope",
	ErrT011:  "unknown type `%s`",
	ErrT012:  "type `%s` has no field `%s`",
	WarnW001: "unreachable match arm %d: covered by earlier arms",
}
