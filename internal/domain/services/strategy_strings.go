package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	"github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

var (
	dottedTriple = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)
	versionLine  = regexp.MustCompile(`(?i)\bversion\b\D{0,16}[0-9]`)
)

// StringsStrategy scans the printable strings embedded in the binary itself.
// Requires read permission on the file, which the resolver records on the
// Target.
type StringsStrategy struct {
	source    gateways.StringSource
	extractor *Extractor
	logger    interfaces.Logger
}

// NewStringsStrategy creates the binary string scan strategy
func NewStringsStrategy(source gateways.StringSource, extractor *Extractor,
	logger interfaces.Logger) *StringsStrategy {
	return &StringsStrategy{source: source, extractor: extractor, logger: logger}
}

// Name identifies the strategy
func (s *StringsStrategy) Name() string { return "binary strings" }

// Attempt accepts a dotted triple directly when the binary embeds exactly
// one unique such pattern; otherwise it extracts from the first line
// containing the word "version" followed by a number.
func (s *StringsStrategy) Attempt(_ context.Context, target entities.Target) (*entities.StrategyOutcome, error) {
	if !target.Readable {
		s.logger.Debug("binary not readable, skipping strings scan",
			interfaces.F("path", target.ResolvedPath))
		return nil, nil
	}

	lines, err := s.source.Strings(target.ResolvedPath)
	if err != nil {
		s.logger.Debug("strings extraction failed", interfaces.F("error", err.Error()))
		return nil, nil
	}

	// Pass 1: a single unique dotted triple anywhere in the binary is
	// accepted as-is.
	unique := map[string]bool{}
	evidence := ""
	for _, line := range lines {
		for _, m := range dottedTriple.FindAllString(line, -1) {
			if !unique[m] {
				unique[m] = true
				evidence = line
			}
		}
	}
	if len(unique) == 1 {
		for version := range unique {
			return &entities.StrategyOutcome{
				Method:   entities.MethodBinaryStrings,
				Evidence: strings.TrimSpace(evidence),
				Version:  version,
			}, nil
		}
	}

	// Pass 2: a "version ... N" line run through the extractor.
	for _, line := range lines {
		if !versionLine.MatchString(line) {
			continue
		}
		if version, ok := s.extractor.Extract(line); ok {
			return &entities.StrategyOutcome{
				Method:   entities.MethodBinaryStrings,
				Evidence: strings.TrimSpace(line),
				Version:  version,
			}, nil
		}
	}
	return nil, nil
}
