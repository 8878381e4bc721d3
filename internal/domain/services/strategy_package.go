package services

import (
	"context"
	"fmt"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
	"github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

// PackageStrategy asks the platform package database which package owns the
// resolved executable and uses that package's recorded version. Metadata
// only - nothing is executed under the sandbox here.
type PackageStrategy struct {
	db     gateways.PackageDatabase
	logger interfaces.Logger
}

// NewPackageStrategy creates the package-manager lookup strategy. db may be
// nil on hosts without a supported package database; the strategy then skips.
func NewPackageStrategy(db gateways.PackageDatabase, logger interfaces.Logger) *PackageStrategy {
	return &PackageStrategy{db: db, logger: logger}
}

// Name identifies the strategy
func (s *PackageStrategy) Name() string { return "package manager" }

// Attempt resolves ownership of the executable path, falling back to the
// base name as a best-effort package name guess.
func (s *PackageStrategy) Attempt(ctx context.Context, target entities.Target) (*entities.StrategyOutcome, error) {
	if s.db == nil {
		return nil, nil
	}

	version, err := s.db.OwnerVersion(ctx, target.ResolvedPath)
	if err != nil {
		s.logger.Debug("path ownership lookup failed",
			interfaces.F("db", s.db.Name()),
			interfaces.F("error", err.Error()))
		version, err = s.db.PackageVersion(ctx, target.BaseName)
	}
	if err != nil || version == "" {
		return nil, nil
	}

	return &entities.StrategyOutcome{
		Method:   entities.MethodPackageManager,
		Evidence: fmt.Sprintf("%s reports version %s", s.db.Name(), version),
		Version:  version,
		Detail:   s.db.Name(),
	}, nil
}
