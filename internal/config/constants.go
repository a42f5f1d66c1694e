package config

// Built-in type names
const (
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	StringTypeName = "String"
	CharTypeName   = "Char"
	BoolTypeName   = "Bool"
	UnitTypeName   = "Unit"
	OptionTypeName = "Option"
	ResultTypeName = "Result"
)

// Built-in constructor names
const (
	SomeCtorName  = "Some"
	NoneCtorName  = "None"
	OkCtorName    = "Ok"
	ErrCtorName   = "Err"
	TrueCtorName  = "true"
	FalseCtorName = "false"
)

// DefaultMatchDepthLimit bounds nested constructor specialization during
// exhaustiveness checking. Beyond this depth a value's structure is treated
// as opaque, which keeps the check terminating on recursive types.
const DefaultMatchDepthLimit = 3

// DefaultGuardAllowList names the pure prelude functions a match guard may
// call. Anything outside this list makes usefulness analysis unsound.
var DefaultGuardAllowList = []string{"abs", "len", "min", "max", "not"}
