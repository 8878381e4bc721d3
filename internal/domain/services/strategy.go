package services

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	"github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

// Strategy is one self-contained method of attempting to discover a version
// string. A nil outcome with a nil error means "no evidence, try the next
// strategy". Only entities.ErrPrivilegeSetup aborts the whole pipeline.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, target entities.Target) (*entities.StrategyOutcome, error)
}

// optionNoise matches the argument-parsing complaints programs emit for
// flags they do not understand. Stderr matching it is excluded from
// classification to avoid false positives.
var optionNoise = regexp.MustCompile(`(?i)(unrecognized|unknown|invalid|illegal|unexpected)\s+(option|flag|argument|command|switch)`)

// probe bundles what every execution-based strategy needs: run the target
// once, merge channels, classify, extract.
type probe struct {
	runner     gateways.Runner
	classifier *Classifier
	extractor  *Extractor
	cfg        *entities.Config
	logger     interfaces.Logger
}

func newProbe(runner gateways.Runner, classifier *Classifier, extractor *Extractor,
	cfg *entities.Config, logger interfaces.Logger) probe {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return probe{
		runner:     runner,
		classifier: classifier,
		extractor:  extractor,
		cfg:        cfg,
		logger:     logger,
	}
}

// request builds the allow-listed execution request for one attempt. The
// environment is constructed fresh every time and never inherited wholesale.
func (p probe) request(target entities.Target, args []string) entities.ExecutionRequest {
	return entities.ExecutionRequest{
		Path:           target.ResolvedPath,
		Args:           args,
		Timeout:        p.cfg.AttemptTimeout,
		RestrictedUser: p.cfg.RestrictedUser,
		Env:            BuildEnvironment(p.cfg),
	}
}

// analyze merges the captured channels and runs classification and
// extraction. Stderr joins the analyzed text unless it is option noise.
func (p probe) analyze(res entities.ExecutionResult, target entities.Target,
	method entities.Method, detail string) *entities.StrategyOutcome {
	text := res.Stdout
	if res.Stderr != "" && !optionNoise.MatchString(res.Stderr) {
		text += "\n" + res.Stderr
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	ok, rule := p.classifier.LooksLikeVersion(text, target.BaseName)
	if !ok {
		return nil
	}
	p.logger.Debug("classifier accepted output",
		interfaces.F("method", method.String()),
		interfaces.F("detail", detail),
		interfaces.F("rule", rule))

	outcome := &entities.StrategyOutcome{
		Method:   method,
		Evidence: text,
		Detail:   detail,
	}
	if version, parsed := p.extractor.Extract(text); parsed {
		outcome.Version = version
	}
	return outcome
}

// BuildEnvironment constructs the per-request environment allow-list from
// the configuration: fixed variables plus the forwarded ones that are
// actually set. Display and session variables are never candidates.
func BuildEnvironment(cfg *entities.Config) map[string]string {
	env := make(map[string]string, len(cfg.SetEnv)+len(cfg.PassEnv))
	for key, value := range cfg.SetEnv {
		env[key] = value
	}
	for _, key := range cfg.PassEnv {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = value
		}
	}
	return env
}
