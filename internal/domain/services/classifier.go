// Package services implements the detection engine: text classification,
// version extraction, the five strategies and the pipeline that drives them.
package services

import (
	"regexp"
	"strings"

	"github.com/verhound/verhound/internal/domain/interfaces"
)

// StderrMarker separates the stdout and stderr channels in merged
// help-analysis text. The classifier truncates at it so argument-parsing
// noise on stderr cannot produce false positives.
const StderrMarker = "--- STDERR ---"

var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

	// version: 1.2 / version 1.2 / Version:1.2
	versionKeyword = regexp.MustCompile(`(?i)\bversion:?\s?[0-9]`)

	// gcc-style toolchain self-reports: "compiled by ... 11.4.0"
	compiledLinked = regexp.MustCompile(`(?i)\b(compiled|linked)\b.*[0-9]+\.[0-9]+\.[0-9]+`)

	// N.N or N.N.N with an optional -/.-delimited build tag
	dottedNumber = regexp.MustCompile(`[0-9]+\.[0-9]+(?:\.[0-9]+)?(?:[-.][0-9A-Za-z]+)*`)
)

// Classifier judges whether captured text plausibly contains version
// information for a given program. The rules form an ordered cascade from
// most to least specific; the first match wins.
type Classifier struct {
	uniquenessLimit int
	logger          interfaces.Logger
}

// NewClassifier creates a classifier. uniquenessLimit caps how many distinct
// dotted-number candidates the fallback rule tolerates; values below 1 are
// treated as 1.
func NewClassifier(uniquenessLimit int, logger interfaces.Logger) *Classifier {
	if uniquenessLimit < 1 {
		uniquenessLimit = 1
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Classifier{uniquenessLimit: uniquenessLimit, logger: logger}
}

// LooksLikeVersion reports whether text plausibly contains version
// information for the program named baseName, along with the identifier of
// the rule that matched (for diagnostics).
func (c *Classifier) LooksLikeVersion(text, baseName string) (bool, string) {
	text = StripANSI(text)
	variants := baseNameVariants(baseName)

	// Rule 1: "<base> version 1.2", "<base> v1.2", a runtime-prefixed token
	// after the keyword ("go version go1.21") or directly after the program
	// name ("go go1.21"). The unsuffixed form of an alias-substituted name
	// counts as the program name.
	quoted := make([]string, len(variants))
	for i, v := range variants {
		quoted[i] = regexp.QuoteMeta(v)
	}
	base := "(?:" + strings.Join(quoted, "|") + ")"
	rule1 := regexp.MustCompile(`(?i)\b` + base + `\s+(version:?\s?(?:v?[0-9]|[a-z]+[0-9])|v[0-9]|[a-z]+[0-9])`)
	if rule1.MatchString(text) {
		c.logger.Debug("classifier accept", interfaces.F("rule", "program-version"))
		return true, "program-version"
	}

	// Rule 2: a standalone "version:" or "version " immediately followed by
	// digits, anywhere in the text.
	if versionKeyword.MatchString(text) {
		c.logger.Debug("classifier accept", interfaces.F("rule", "version-keyword"))
		return true, "version-keyword"
	}

	// Rule 3: toolchain self-report.
	if compiledLinked.MatchString(text) {
		c.logger.Debug("classifier accept", interfaces.F("rule", "compiled-linked"))
		return true, "compiled-linked"
	}

	// Rule 4: uniqueness-gated dotted-number fallback. Free-form output is
	// full of unrelated numbers (copyright years, option lists), so a bare
	// dotted number only counts when it is effectively the only candidate
	// and sits in version-suggestive context.
	if ok := c.uniqueDottedCandidate(text, variants); ok {
		c.logger.Debug("classifier accept", interfaces.F("rule", "unique-dotted"))
		return true, "unique-dotted"
	}

	return false, ""
}

// uniqueDottedCandidate implements the fallback rule: collect every dotted
// number in the text, require the distinct set to be within the uniqueness
// limit after contextual filtering, and require the survivor to appear on a
// line with the base name, on a line containing "version", or alone on its
// own line.
func (c *Classifier) uniqueDottedCandidate(text string, variants []string) bool {
	all := dottedNumber.FindAllString(text, -1)
	if len(all) == 0 {
		return false
	}

	unique := map[string]bool{}
	for _, m := range all {
		unique[m] = true
	}

	// Too many distinct candidates: keep only those on contextually
	// version-suggestive lines before giving up.
	if len(unique) > c.uniquenessLimit {
		unique = c.filterByContext(text, unique, variants)
		if len(unique) != 1 {
			return false
		}
	}

	for candidate := range unique {
		if c.inContext(text, candidate, variants) {
			return true
		}
	}
	return false
}

// filterByContext keeps candidates whose line mentions the base name or the
// word "version".
func (c *Classifier) filterByContext(text string, candidates map[string]bool, variants []string) map[string]bool {
	kept := map[string]bool{}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !mentionsVariant(lower, variants) && !strings.Contains(lower, "version") {
			continue
		}
		for candidate := range candidates {
			if strings.Contains(line, candidate) {
				kept[candidate] = true
			}
		}
	}
	return kept
}

// inContext reports whether the candidate appears on a line with the base
// name, on a line containing "version", or alone on its own line.
func (c *Classifier) inContext(text, candidate string, variants []string) bool {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, candidate) {
			continue
		}
		lower := strings.ToLower(line)
		if mentionsVariant(lower, variants) || strings.Contains(lower, "version") {
			return true
		}
		if strings.TrimSpace(line) == candidate {
			return true
		}
	}
	return false
}

// baseNameVariants returns the lowercase program name plus its unsuffixed
// form, so the alias-substituted "python3" also matches banners that say
// "Python".
func baseNameVariants(baseName string) []string {
	lower := strings.ToLower(baseName)
	variants := []string{lower}
	if trimmed := strings.TrimRight(lower, "0123456789"); trimmed != "" && trimmed != lower {
		variants = append(variants, trimmed)
	}
	return variants
}

func mentionsVariant(lower string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// StripANSI removes ANSI escape sequences from text.
func StripANSI(text string) string {
	return ansiEscape.ReplaceAllString(text, "")
}

// TruncateAtStderrMarker drops everything after the stderr channel marker.
// Used by help-analysis callers before classification.
func TruncateAtStderrMarker(text string) string {
	if idx := strings.Index(text, StderrMarker); idx >= 0 {
		return text[:idx]
	}
	return text
}
