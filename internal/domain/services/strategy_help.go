package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	"github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

// versionFlagToken matches version-flag-shaped tokens embedded in help text,
// e.g. "-v", "-V", "--version", "--ver".
var versionFlagToken = regexp.MustCompile(`--?(version|Version|ver|V|v)\b`)

// HelpStrategy asks the target for its help text, looks for an advertised
// version flag inside it and re-probes with that flag. The raw help text
// itself is classified as an in-step fallback.
type HelpStrategy struct {
	probe
	helpFlags []string
}

// NewHelpStrategy creates the help-text mining strategy
func NewHelpStrategy(runner gateways.Runner, classifier *Classifier, extractor *Extractor,
	cfg *entities.Config, logger interfaces.Logger) *HelpStrategy {
	return &HelpStrategy{
		probe:     newProbe(runner, classifier, extractor, cfg, logger),
		helpFlags: []string{"--help", "-h"},
	}
}

// Name identifies the strategy
func (s *HelpStrategy) Name() string { return "help mining" }

// Attempt fetches help output with --help (falling back to -h only when
// --help fails outright), mines it for a version flag, and classifies the
// help text itself if the mined flag yields nothing.
func (s *HelpStrategy) Attempt(ctx context.Context, target entities.Target) (*entities.StrategyOutcome, error) {
	for _, helpFlag := range s.helpFlags {
		res := s.runner.Run(ctx, s.request(target, []string{helpFlag}))

		switch res.Outcome {
		case entities.OutcomePrivilegeError:
			return nil, entities.ErrPrivilegeSetup
		case entities.OutcomeTimedOut:
			s.logger.Debug("help probe timed out",
				interfaces.F("program", target.BaseName),
				interfaces.F("flag", helpFlag))
			continue
		case entities.OutcomeCommandError:
			// Many programs print usage and exit non-zero; only an empty
			// capture means this help flag failed outright.
			if strings.TrimSpace(res.Stdout+res.Stderr) == "" {
				continue
			}
		case entities.OutcomeSuccess:
		}

		combined := res.Stdout + "\n" + StderrMarker + "\n" + res.Stderr
		if optionNoise.MatchString(combined) {
			// The help flag itself was not understood; its output tells us
			// nothing about this program.
			continue
		}

		if flag := s.mineVersionFlag(combined); flag != "" {
			s.logger.Debug("help text advertises a version flag",
				interfaces.F("program", target.BaseName),
				interfaces.F("flag", flag))
			if outcome := s.reprobe(ctx, target, flag); outcome != nil {
				return outcome, nil
			}
		}

		// Fallback: some programs put their version banner in the help text.
		helpText := strings.TrimSpace(TruncateAtStderrMarker(combined))
		if ok, _ := s.classifier.LooksLikeVersion(helpText, target.BaseName); ok {
			outcome := &entities.StrategyOutcome{
				Method:   entities.MethodHelp,
				Evidence: helpText,
				Detail:   helpFlag,
			}
			if version, parsed := s.extractor.Extract(helpText); parsed {
				outcome.Version = version
			}
			return outcome, nil
		}

		// The capture was usable, it just held no version; the remaining help
		// flags would only re-invoke the target for the same text.
		break
	}
	return nil, nil
}

// mineVersionFlag returns the first version-flag-shaped token in the help
// text, preferring long options over single letters.
func (s *HelpStrategy) mineVersionFlag(helpText string) string {
	matches := versionFlagToken.FindAllString(helpText, -1)
	short := ""
	for _, m := range matches {
		if strings.HasPrefix(m, "--") {
			return m
		}
		if short == "" {
			short = m
		}
	}
	return short
}

// reprobe runs the target with a flag discovered in its help text.
func (s *HelpStrategy) reprobe(ctx context.Context, target entities.Target, flag string) *entities.StrategyOutcome {
	res := s.runner.Run(ctx, s.request(target, []string{flag}))
	if res.Outcome != entities.OutcomeSuccess {
		return nil
	}
	outcome := s.analyze(res, target, entities.MethodHelp, flag)
	return outcome
}
