// Package gateways defines the contracts between the detection engine and
// its OS-facing adapters.
package gateways

import (
	"context"

	"github.com/verhound/verhound/internal/domain/entities"
)

// Runner executes an untrusted program under a restricted identity, a
// scrubbed environment and a hard wall-clock timeout.
type Runner interface {
	// Run performs one invocation and captures its output. It never returns
	// an error: every failure mode is encoded in the result's Outcome.
	Run(ctx context.Context, req entities.ExecutionRequest) entities.ExecutionResult

	// CheckExecutable verifies that the restricted identity may execute the
	// given path, without actually running it. Returns
	// entities.ErrNoPermissionUser or entities.ErrPrivilegeSetup on failure.
	CheckExecutable(ctx context.Context, path string) error
}
