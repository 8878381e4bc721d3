package entities

import "time"

// Outcome is the tri-state-plus-privilege result of a sandboxed execution.
type Outcome int

const (
	// OutcomeSuccess means the process ran to completion and exited zero.
	OutcomeSuccess Outcome = iota

	// OutcomeCommandError means the process exited non-zero (or failed to
	// start) for reasons other than a timeout or a privilege problem.
	OutcomeCommandError

	// OutcomeTimedOut means the process exceeded its wall-clock budget and
	// was forcibly terminated.
	OutcomeTimedOut

	// OutcomePrivilegeError means the sandbox could not elevate to the
	// restricted identity without an interactive prompt. This is an
	// environment misconfiguration, not a per-program failure.
	OutcomePrivilegeError
)

// String returns the string representation of an Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCommandError:
		return "command-error"
	case OutcomeTimedOut:
		return "timed-out"
	case OutcomePrivilegeError:
		return "privilege-error"
	default:
		return "unknown"
	}
}

// ExecutionRequest describes one attempted invocation of the target program.
// Env is always an explicit allow-list built fresh per request - it is never
// the inherited process environment.
type ExecutionRequest struct {
	Path           string
	Args           []string
	Timeout        time.Duration
	RestrictedUser string
	Env            map[string]string
}

// ExecutionResult is the captured outcome of one invocation. It is immutable
// and consumed exactly once by the calling strategy.
type ExecutionResult struct {
	Outcome  Outcome
	ExitCode int // -1 when the process never produced an exit code
	Stdout   string
	Stderr   string
}
