package gateways

import "context"

// PackageDatabase answers "which version of the package owning this path is
// installed". Exactly one implementation is selected per platform family;
// queries are metadata lookups and need no sandboxing.
type PackageDatabase interface {
	// Name identifies the database family, e.g. "dpkg" or "rpm".
	Name() string

	// OwnerVersion resolves the package owning the executable path and
	// returns its recorded version, with any leading epoch marker stripped.
	OwnerVersion(ctx context.Context, path string) (string, error)

	// PackageVersion queries by package name directly, the best-effort alias
	// guess used when path ownership resolution fails.
	PackageVersion(ctx context.Context, name string) (string, error)
}
