package services

import "regexp"

// Extraction patterns, in priority order. Applied only to text the
// classifier has already accepted.
var (
	// Runtime-prefixed: a letter run immediately followed by a dotted
	// number, e.g. "go1.21.3" or "openssl3.0.2-beta1".
	prefixedVersion = regexp.MustCompile(`\b[a-zA-Z]+[0-9]+\.[0-9]+(?:\.[0-9]+)?(?:[-.][0-9A-Za-z]+)*`)

	// Dotted triple with optional build suffix: "2.34.1", "1.2.3-rc.1".
	tripleVersion = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+(?:[-.][0-9A-Za-z]+)*`)

	// Dotted pair with optional build suffix: "3.0", "5.2-p1".
	pairVersion = regexp.MustCompile(`[0-9]+\.[0-9]+(?:[-][0-9A-Za-z]+)*`)

	// Last resort: the digits following a literal "v" or "version" token,
	// e.g. "v9" -> "9", "Version: 3.0" -> "3.0".
	afterKeyword = regexp.MustCompile(`(?i)\bv(?:ersion)?:?\s*([0-9][0-9A-Za-z.]*)`)
)

// Extractor pulls a single normalized version token out of text already
// judged to contain version information.
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the first version token matched by the pattern cascade.
// The second return is false when nothing matched even though the classifier
// accepted; callers report that as "found but unparsable", not as a hard
// failure.
func (e *Extractor) Extract(text string) (string, bool) {
	text = StripANSI(text)

	if m := prefixedVersion.FindString(text); m != "" {
		return m, true
	}
	if m := tripleVersion.FindString(text); m != "" {
		return m, true
	}
	if m := pairVersion.FindString(text); m != "" {
		return m, true
	}
	if m := afterKeyword.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}
