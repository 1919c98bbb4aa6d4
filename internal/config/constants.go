package config

const SourceFileExt = ".gwn"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".gwn"}

// IsTestMode indicates if the program is running in test mode.
// Normalizes generated type variable names for deterministic output.
var IsTestMode = false

// Built-in function names
const (
	PrintFuncName    = "print"
	MapFuncName      = "map"
	ToStringFuncName = "toString"
)

// Built-in type names
const (
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	BoolTypeName   = "Bool"
	StringTypeName = "String"
	ListTypeName   = "List"
	NilTypeName    = "Nil"
)
