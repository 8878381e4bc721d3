package gateways

import (
	"context"

	"github.com/verhound/verhound/internal/domain/entities"
)

// PathResolver locates the executable for a program name and verifies that
// both the invoking and the restricted identity may run it.
type PathResolver interface {
	// Resolve returns a fully-checked Target, or one of entities.ErrNotFound,
	// entities.ErrNoPermission, entities.ErrNoPermissionUser,
	// entities.ErrPrivilegeSetup.
	Resolve(ctx context.Context, name string) (entities.Target, error)
}
