// Package gateways provides adapter implementations for the OS-facing
// contracts: sandboxed execution, path resolution, package database lookup
// and binary string extraction.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/verhound/verhound/internal/domain/entities"
	"github.com/verhound/verhound/internal/domain/interfaces"
)

// envBinary rebuilds the environment on the far side of the sudo boundary,
// so nothing from the invoking session leaks through.
const envBinary = "/usr/bin/env"

// checkTimeout bounds the restricted-identity dry run.
const checkTimeout = 5 * time.Second

// sudoPromptNoise identifies sudo refusing to elevate without interactive
// input. That is an environment misconfiguration, not a target failure.
var sudoPromptNoise = regexp.MustCompile(`(?i)password is required|no askpass program|may not run sudo|not in the sudoers`)

// SandboxRunner executes untrusted targets as a restricted identity through
// sudo, with a scrubbed environment and a hard wall-clock timeout. An empty
// restricted user in the configuration runs directly as the invoking user.
type SandboxRunner struct {
	restrictedUser string
	sudoPath       string
	logger         interfaces.Logger
}

// NewSandboxRunner creates a new sandbox runner
func NewSandboxRunner(cfg *entities.Config, logger interfaces.Logger) *SandboxRunner {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	sudoPath, err := exec.LookPath("sudo")
	if err != nil {
		sudoPath = "/usr/bin/sudo"
	}
	return &SandboxRunner{
		restrictedUser: cfg.RestrictedUser,
		sudoPath:       sudoPath,
		logger:         logger,
	}
}

// Run performs one invocation of the target and captures its output. Every
// failure mode is encoded in the result's Outcome; Run itself never errors.
func (r *SandboxRunner) Run(ctx context.Context, req entities.ExecutionRequest) entities.ExecutionResult {
	execCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	usedSudo := req.RestrictedUser != ""
	cmd := r.command(execCtx, req)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// The child gets its own process group so a timeout kill reaches any
	// grandchildren the target may have spawned.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
	cmd.WaitDelay = 2 * time.Second

	r.logger.Debug("executing target",
		interfaces.F("path", req.Path),
		interfaces.F("args", req.Args),
		interfaces.F("sandboxed", usedSudo))

	err := cmd.Run()
	result := entities.ExecutionResult{
		Outcome:  entities.OutcomeSuccess,
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err == nil {
		return result
	}

	if execCtx.Err() == context.DeadlineExceeded {
		result.Outcome = entities.OutcomeTimedOut
		result.ExitCode = -1
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if usedSudo && sudoPromptNoise.MatchString(result.Stderr) {
			result.Outcome = entities.OutcomePrivilegeError
			return result
		}
		result.Outcome = entities.OutcomeCommandError
		return result
	}

	// The process never started (bad interpreter, vanished file, ...).
	r.logger.Debug("target failed to start", interfaces.F("error", err.Error()))
	result.Outcome = entities.OutcomeCommandError
	result.ExitCode = -1
	return result
}

// CheckExecutable verifies that the restricted identity may execute the
// path, without running it.
func (r *SandboxRunner) CheckExecutable(ctx context.Context, path string) error {
	if r.restrictedUser == "" {
		if unix.Access(path, unix.X_OK) != nil {
			return entities.ErrNoPermissionUser
		}
		return nil
	}

	res := r.Run(ctx, entities.ExecutionRequest{
		Path:           "test",
		Args:           []string{"-x", path},
		Timeout:        checkTimeout,
		RestrictedUser: r.restrictedUser,
		Env:            map[string]string{"PATH": "/usr/bin:/bin"},
	})
	switch res.Outcome {
	case entities.OutcomeSuccess:
		return nil
	case entities.OutcomePrivilegeError:
		return entities.ErrPrivilegeSetup
	default:
		return entities.ErrNoPermissionUser
	}
}

// command assembles the argv for one request. Sandboxed requests run as
//
//	sudo -n -u <user> /usr/bin/env -i K=V ... <path> <args>
//
// so the environment is exactly the allow-list, rebuilt inside the elevated
// process. -n makes sudo fail instead of prompting.
func (r *SandboxRunner) command(ctx context.Context, req entities.ExecutionRequest) *exec.Cmd {
	envPairs := flattenEnv(req.Env)

	if req.RestrictedUser == "" {
		//nolint:gosec // G204: executing the user-named target is the whole point
		cmd := exec.CommandContext(ctx, req.Path, req.Args...)
		cmd.Env = envPairs
		return cmd
	}

	args := []string{"-n", "-u", req.RestrictedUser, "--", envBinary, "-i"}
	args = append(args, envPairs...)
	args = append(args, req.Path)
	args = append(args, req.Args...)
	//nolint:gosec // G204: executing the user-named target is the whole point
	return exec.CommandContext(ctx, r.sudoPath, args...)
}

// flattenEnv renders the allow-list map as sorted KEY=VALUE pairs. Sorting
// keeps invocations deterministic.
func flattenEnv(env map[string]string) []string {
	pairs := make([]string, 0, len(env))
	for key, value := range env {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, value))
	}
	sort.Strings(pairs)
	return pairs
}
