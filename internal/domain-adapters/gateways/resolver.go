package gateways

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	igateways "github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

// PathResolver locates the executable for a program name and verifies both
// identities may run it before any strategy does.
type PathResolver struct {
	suffixes []string
	runner   igateways.Runner
	logger   interfaces.Logger
}

// NewPathResolver creates a new path resolver
func NewPathResolver(cfg *entities.Config, runner igateways.Runner, logger interfaces.Logger) *PathResolver {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &PathResolver{
		suffixes: cfg.AliasSuffixes,
		runner:   runner,
		logger:   logger,
	}
}

// Resolve returns a fully-checked Target. On permission failures the
// returned Target still carries the resolved base name so callers can report
// the substituted name the way the user will recognize it.
func (r *PathResolver) Resolve(ctx context.Context, name string) (entities.Target, error) {
	path, finalName, err := r.locate(name)
	if err != nil {
		return entities.Target{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return entities.Target{}, entities.ErrNotFound
	}

	target := entities.Target{
		RequestedName: finalName,
		ResolvedPath:  abs,
		BaseName:      filepath.Base(finalName),
	}

	if unix.Access(abs, unix.X_OK) != nil {
		return target, entities.ErrNoPermission
	}

	// Read permission only matters for the binary strings scan; its absence
	// is a soft condition, not a failure.
	target.Readable = unix.Access(abs, unix.R_OK) == nil
	if !target.Readable {
		r.logger.Warn("binary is not readable, strings scan will be skipped",
			interfaces.F("path", abs))
	}

	// Dry run as the restricted identity. Surfaces both a missing execute
	// permission and a broken privilege setup before the pipeline starts.
	if err := r.runner.CheckExecutable(ctx, abs); err != nil {
		return target, err
	}

	return target, nil
}

// locate finds the executable path and the effective program name. Bare
// names go through the command-lookup path with one retry per alias suffix;
// names containing a path separator must resolve as given.
func (r *PathResolver) locate(name string) (string, string, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			return "", "", entities.ErrNotFound
		}
		return name, name, nil
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, name, nil
	}
	for _, suffix := range r.suffixes {
		candidate := name + suffix
		if path, err := exec.LookPath(candidate); err == nil {
			r.logger.Debug("resolved via alias suffix",
				interfaces.F("requested", name),
				interfaces.F("resolved", candidate))
			return path, candidate, nil
		}
	}
	return "", "", entities.ErrNotFound
}
