package gateways

// StringSource extracts printable strings from a binary file.
type StringSource interface {
	// Strings returns every printable run found in the file at path.
	Strings(path string) ([]string, error)
}
