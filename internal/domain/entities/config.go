package entities

import "time"

// Config holds the tunables of the detection engine. Every field has a
// compiled-in default; a YAML config file may override any of them.
type Config struct {
	// RestrictedUser is the non-interactive, low-privilege account used to
	// execute the untrusted target. Empty means "run as the invoking user",
	// which is only appropriate for tests and throwaway environments.
	RestrictedUser string

	// AttemptTimeout bounds each individual invocation of the target.
	AttemptTimeout time.Duration

	// ProbeFlags is the ordered list of version flags tried by the flag
	// probing strategy.
	ProbeFlags []string

	// AliasSuffixes are appended to an unresolvable bare name, in order.
	// Covers the interpreter convention of unsuffixed aliases for versioned
	// installs (python vs python3).
	AliasSuffixes []string

	// PassEnv names the invoking-environment variables forwarded to the
	// target. Display, session-bus and terminal-session variables must never
	// appear here.
	PassEnv []string

	// SetEnv holds fixed variables placed in every execution environment.
	SetEnv map[string]string

	// UniquenessLimit is the maximum number of distinct dotted-number
	// candidates the classifier fallback rule tolerates before rejecting the
	// text as ambiguous.
	UniquenessLimit int
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() *Config {
	return &Config{
		RestrictedUser: "verhound",
		AttemptTimeout: 5 * time.Second,
		ProbeFlags: []string{
			"--version", "version", "-v", "-V",
			"--Version", "-version", "--ver", "-ver",
		},
		AliasSuffixes: []string{"3"},
		PassEnv:       []string{"PATH"},
		SetEnv: map[string]string{
			"HOME":   "/tmp",
			"LC_ALL": "C",
		},
		UniquenessLimit: 1,
	}
}
