package entities

// Method identifies which detection strategy produced a result.
type Method int

const (
	// MethodFlag is direct probing with a common version flag.
	MethodFlag Method = iota

	// MethodHelp is mining the program's help text for a version flag.
	MethodHelp

	// MethodPackageManager is a lookup in the platform package database.
	MethodPackageManager

	// MethodBinaryStrings is a scan of printable strings in the binary.
	MethodBinaryStrings

	// MethodNoArgs is running the program with no arguments at all.
	MethodNoArgs
)

// String returns the string representation of a Method.
func (m Method) String() string {
	switch m {
	case MethodFlag:
		return "flag"
	case MethodHelp:
		return "help"
	case MethodPackageManager:
		return "package-manager"
	case MethodBinaryStrings:
		return "strings"
	case MethodNoArgs:
		return "no-args"
	default:
		return "unknown"
	}
}

// StrategyOutcome is the terminal result of a successful strategy. The
// pipeline accumulates at most one before stopping.
//
// Version may be empty even on a classifier accept: that is the distinct
// "found but unparsable" case, which callers must report as such rather than
// treating it as a hard failure.
type StrategyOutcome struct {
	Method   Method
	Evidence string // raw captured text shown in verbose output
	Version  string // normalized version token, empty if unparsable
	Detail   string // method-specific detail, e.g. the flag that worked
}
