// Package orchestrators coordinates the detection use case: resolve the
// target, gate on permissions, drive the strategy pipeline and render the
// result.
//
//nolint:revive // Package name matches the directory convention
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	adapters "github.com/verhound/verhound/internal/domain-adapters/gateways"
	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	igateways "github.com/verhound/verhound/internal/domain/interfaces/gateways"
	"github.com/verhound/verhound/internal/domain/services"
)

// Exit codes of the CLI surface.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Gateways bundles the OS-facing adapters a detection run needs. Injected so
// callers can substitute the host-dependent pieces. PackageDB may be nil on
// hosts without a supported package database.
type Gateways struct {
	Runner    igateways.Runner
	Resolver  igateways.PathResolver
	PackageDB igateways.PackageDatabase
	Strings   igateways.StringSource
}

// DefaultGateways wires the production adapters for this host.
func DefaultGateways(cfg *entities.Config, logger interfaces.Logger) Gateways {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	runner := adapters.NewSandboxRunner(cfg, logger)
	return Gateways{
		Runner:    runner,
		Resolver:  adapters.NewPathResolver(cfg, runner, logger),
		PackageDB: adapters.NewPackageDatabase(logger),
		Strings:   adapters.NewStringsScanner(logger),
	}
}

// DetectOrchestrator wires the gateways and services for one detection run.
// Everything it builds beyond the injected gateways is request-scoped.
type DetectOrchestrator struct {
	cfg    *entities.Config
	logger interfaces.Logger
	gw     Gateways
	out    io.Writer
	errOut io.Writer
	short  bool
}

// NewDetectOrchestrator creates a new detect orchestrator
func NewDetectOrchestrator(cfg *entities.Config, logger interfaces.Logger, gw Gateways,
	out, errOut io.Writer, short bool) *DetectOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &DetectOrchestrator{
		cfg:    cfg,
		logger: logger,
		gw:     gw,
		out:    out,
		errOut: errOut,
		short:  short,
	}
}

// Run resolves the named program, runs the pipeline against it and prints
// the report. Returns the process exit code.
func (o *DetectOrchestrator) Run(ctx context.Context, name string) int {
	formatter := services.NewFormatter(o.short)

	target, err := o.gw.Resolver.Resolve(ctx, name)
	if err != nil {
		baseName := target.BaseName
		if baseName == "" {
			baseName = filepath.Base(name)
		}
		switch {
		case errors.Is(err, entities.ErrNotFound):
			fmt.Fprint(o.out, formatter.FormatStatus(baseName, entities.StatusNotFound))
		case errors.Is(err, entities.ErrNoPermission):
			fmt.Fprint(o.out, formatter.FormatStatus(baseName, entities.StatusNoPermission))
		case errors.Is(err, entities.ErrNoPermissionUser):
			fmt.Fprint(o.out, formatter.FormatStatus(baseName, entities.StatusNoPermissionUser))
		case errors.Is(err, entities.ErrPrivilegeSetup):
			fmt.Fprintf(o.errOut, "verhound: %v\n", err)
		default:
			fmt.Fprintf(o.errOut, "verhound: %v\n", err)
		}
		return ExitFailure
	}

	classifier := services.NewClassifier(o.cfg.UniquenessLimit, o.logger)
	extractor := services.NewExtractor()

	pipeline := services.NewPipeline([]services.Strategy{
		services.NewFlagStrategy(o.gw.Runner, classifier, extractor, o.cfg, o.logger),
		services.NewHelpStrategy(o.gw.Runner, classifier, extractor, o.cfg, o.logger),
		services.NewPackageStrategy(o.gw.PackageDB, o.logger),
		services.NewStringsStrategy(o.gw.Strings, extractor, o.logger),
		services.NewNoArgsStrategy(o.gw.Runner, classifier, extractor, o.cfg, o.logger),
	}, o.logger)

	outcome, err := pipeline.Detect(ctx, target)
	if err != nil {
		// Only the privilege setup failure propagates out of the pipeline.
		fmt.Fprintf(o.errOut, "verhound: %v\n", err)
		return ExitFailure
	}
	if outcome == nil {
		fmt.Fprint(o.out, formatter.FormatStatus(target.BaseName, entities.StatusUndetermined))
		return ExitFailure
	}
	if outcome.Version == "" {
		fmt.Fprint(o.out, formatter.FormatStatus(target.BaseName, entities.StatusFoundButUnparsed))
		return ExitFailure
	}

	fmt.Fprint(o.out, formatter.FormatOutcome(target.BaseName, outcome))
	return ExitOK
}
