package services

import (
	"context"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	"github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

// FlagStrategy probes the target with a fixed priority list of common
// version flags and stops at the first output the classifier accepts.
type FlagStrategy struct {
	probe
	flags []string
}

// NewFlagStrategy creates the flag probing strategy
func NewFlagStrategy(runner gateways.Runner, classifier *Classifier, extractor *Extractor,
	cfg *entities.Config, logger interfaces.Logger) *FlagStrategy {
	return &FlagStrategy{
		probe: newProbe(runner, classifier, extractor, cfg, logger),
		flags: cfg.ProbeFlags,
	}
}

// Name identifies the strategy
func (s *FlagStrategy) Name() string { return "flag probing" }

// Attempt tries each configured flag in order. A timeout on one flag just
// moves on to the next; a privilege error aborts the whole pipeline.
func (s *FlagStrategy) Attempt(ctx context.Context, target entities.Target) (*entities.StrategyOutcome, error) {
	for _, flag := range s.flags {
		res := s.runner.Run(ctx, s.request(target, []string{flag}))

		switch res.Outcome {
		case entities.OutcomePrivilegeError:
			return nil, entities.ErrPrivilegeSetup
		case entities.OutcomeTimedOut:
			s.logger.Debug("probe timed out",
				interfaces.F("program", target.BaseName),
				interfaces.F("flag", flag))
			continue
		case entities.OutcomeCommandError:
			s.logger.Debug("probe exited non-zero",
				interfaces.F("flag", flag),
				interfaces.F("exit_code", res.ExitCode))
			continue
		case entities.OutcomeSuccess:
			if outcome := s.analyze(res, target, entities.MethodFlag, flag); outcome != nil {
				return outcome, nil
			}
		}
	}
	return nil, nil
}
