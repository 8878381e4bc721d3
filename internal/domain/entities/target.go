package entities

// Target identifies the executable under inspection. It is created once by
// the path resolver and is the only state shared between strategies.
type Target struct {
	RequestedName string // name as given on the command line, possibly suffix-substituted
	ResolvedPath  string // absolute path to the executable
	BaseName      string // final path component, used in all heuristic text matching
	Readable      bool   // invoking user can read the file (gates the strings scan)
}
