package services

import (
	"context"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	"github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

// NoArgsStrategy runs the program with no arguments at all. Least reliable:
// many programs drop into an interactive prompt or do real work when invoked
// bare, so the short timeout is the main safety net.
type NoArgsStrategy struct {
	probe
}

// NewNoArgsStrategy creates the no-argument fallback strategy
func NewNoArgsStrategy(runner gateways.Runner, classifier *Classifier, extractor *Extractor,
	cfg *entities.Config, logger interfaces.Logger) *NoArgsStrategy {
	return &NoArgsStrategy{probe: newProbe(runner, classifier, extractor, cfg, logger)}
}

// Name identifies the strategy
func (s *NoArgsStrategy) Name() string { return "no arguments" }

// Attempt invokes the bare program and applies the same classify/extract
// logic as flag probing.
func (s *NoArgsStrategy) Attempt(ctx context.Context, target entities.Target) (*entities.StrategyOutcome, error) {
	res := s.runner.Run(ctx, s.request(target, nil))

	switch res.Outcome {
	case entities.OutcomePrivilegeError:
		return nil, entities.ErrPrivilegeSetup
	case entities.OutcomeTimedOut:
		s.logger.Debug("bare invocation timed out",
			interfaces.F("program", target.BaseName))
		return nil, nil
	case entities.OutcomeCommandError:
		return nil, nil
	}

	return s.analyze(res, target, entities.MethodNoArgs, ""), nil
}
