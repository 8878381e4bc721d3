package services

import (
	"context"
	"errors"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
)

// Pipeline drives the ordered strategies, short-circuiting on the first one
// that produces an outcome. Strategies are strictly sequential: early
// success must suppress later, riskier attempts.
type Pipeline struct {
	strategies []Strategy
	logger     interfaces.Logger
}

// NewPipeline creates a pipeline over the given strategies, in order.
func NewPipeline(strategies []Strategy, logger interfaces.Logger) *Pipeline {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Pipeline{strategies: strategies, logger: logger}
}

// Detect runs the strategies against the target. It returns nil when every
// strategy was exhausted without evidence (the "undetermined" terminal
// state). entities.ErrPrivilegeSetup is the only error that propagates;
// anything else a strategy reports is absorbed as "try the next one".
func (p *Pipeline) Detect(ctx context.Context, target entities.Target) (*entities.StrategyOutcome, error) {
	for _, strategy := range p.strategies {
		p.logger.Debug("trying strategy",
			interfaces.F("strategy", strategy.Name()),
			interfaces.F("program", target.BaseName))

		outcome, err := strategy.Attempt(ctx, target)
		if err != nil {
			if errors.Is(err, entities.ErrPrivilegeSetup) {
				return nil, err
			}
			p.logger.Warn("strategy failed",
				interfaces.F("strategy", strategy.Name()),
				interfaces.F("error", err.Error()))
			continue
		}
		if outcome != nil {
			p.logger.Debug("strategy succeeded",
				interfaces.F("strategy", strategy.Name()),
				interfaces.F("version", outcome.Version))
			return outcome, nil
		}
	}
	return nil, nil
}
