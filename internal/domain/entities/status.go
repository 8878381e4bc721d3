package entities

import "errors"

// Status is the terminal failure taxonomy surfaced to the user. Each status
// maps to a fixed short-mode token and a fixed long-mode sentence; stack
// traces never reach the user.
type Status int

const (
	// StatusNotFound means the program could not be located at all.
	StatusNotFound Status = iota

	// StatusNoPermission means the invoking user may not execute the program.
	StatusNoPermission

	// StatusNoPermissionUser means the restricted identity may not execute it.
	StatusNoPermissionUser

	// StatusFoundButUnparsed means version-looking text was found but no
	// token could be extracted from it.
	StatusFoundButUnparsed

	// StatusUndetermined means every strategy was exhausted without success.
	StatusUndetermined
)

// Token returns the fixed short-mode output token for a status.
func (s Status) Token() string {
	switch s {
	case StatusNotFound:
		return "not-found"
	case StatusNoPermission:
		return "no-permission"
	case StatusNoPermissionUser:
		return "no-permission-user"
	case StatusFoundButUnparsed:
		return "found-but-unparsed"
	case StatusUndetermined:
		return "undetermined"
	default:
		return "unknown"
	}
}

// Sentinel errors for the failures that abort a run before or during the
// pipeline. Everything else is strategy-local and absorbed by "try next
// strategy".
var (
	// ErrNotFound reports that the program could not be resolved.
	ErrNotFound = errors.New("command not found")

	// ErrNoPermission reports that the invoking user cannot execute the program.
	ErrNoPermission = errors.New("no execute permission for invoking user")

	// ErrNoPermissionUser reports that the restricted identity cannot execute it.
	ErrNoPermissionUser = errors.New("no execute permission for restricted user")

	// ErrPrivilegeSetup reports that the sandbox cannot elevate to the
	// restricted identity without prompting. Fatal, never retried.
	ErrPrivilegeSetup = errors.New("cannot run commands as the restricted user without a password")
)
