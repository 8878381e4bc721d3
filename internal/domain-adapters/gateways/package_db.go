package gateways

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/verhound/verhound/internal/domain/interfaces"
	igateways "github.com/verhound/verhound/internal/domain/interfaces/gateways"
)

// epochPrefix is the "N:" epoch marker some package formats prepend to the
// version field.
var epochPrefix = regexp.MustCompile(`^[0-9]+:`)

// NewPackageDatabase selects the package database for this host: dpkg where
// dpkg-query exists, rpm where rpm exists, nil otherwise. Exactly one
// family is ever active.
func NewPackageDatabase(logger interfaces.Logger) igateways.PackageDatabase {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if path, err := exec.LookPath("dpkg-query"); err == nil {
		return &dpkgDatabase{queryPath: path, logger: logger}
	}
	if path, err := exec.LookPath("rpm"); err == nil {
		return &rpmDatabase{rpmPath: path, logger: logger}
	}
	logger.Debug("no supported package database on this host")
	return nil
}

// dpkgDatabase queries the Debian-family package database.
type dpkgDatabase struct {
	queryPath string
	logger    interfaces.Logger
}

func (d *dpkgDatabase) Name() string { return "dpkg" }

// OwnerVersion resolves the package owning path via dpkg-query -S and
// returns its recorded version.
func (d *dpkgDatabase) OwnerVersion(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, d.queryPath, "-S", path).Output()
	if err != nil {
		return "", fmt.Errorf("dpkg ownership query failed for %s: %w", path, err)
	}
	pkg, err := parseDpkgOwner(string(out))
	if err != nil {
		return "", err
	}
	return d.PackageVersion(ctx, pkg)
}

// PackageVersion returns the installed version recorded for the package.
func (d *dpkgDatabase) PackageVersion(ctx context.Context, name string) (string, error) {
	out, err := exec.CommandContext(ctx, d.queryPath, "-W", "-f", "${Version}", name).Output()
	if err != nil {
		return "", fmt.Errorf("dpkg version query failed for %s: %w", name, err)
	}
	version := stripEpoch(strings.TrimSpace(string(out)))
	if version == "" {
		return "", fmt.Errorf("dpkg has no version recorded for %s", name)
	}
	return version, nil
}

// parseDpkgOwner extracts the package name from dpkg-query -S output of the
// form "coreutils: /usr/bin/ls" (possibly "libc6:amd64: /lib/...").
func parseDpkgOwner(out string) (string, error) {
	line := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	if line == "" || strings.HasPrefix(line, "diversion") {
		return "", fmt.Errorf("unexpected dpkg -S output: %q", line)
	}
	idx := strings.LastIndex(line, ": ")
	if idx < 0 {
		return "", fmt.Errorf("unexpected dpkg -S output: %q", line)
	}
	pkg := line[:idx]
	// Strip an architecture qualifier; the version query does not need it.
	if colon := strings.Index(pkg, ":"); colon > 0 {
		pkg = pkg[:colon]
	}
	return pkg, nil
}

// rpmDatabase queries the RPM-family package database.
type rpmDatabase struct {
	rpmPath string
	logger  interfaces.Logger
}

func (r *rpmDatabase) Name() string { return "rpm" }

// OwnerVersion resolves the package owning path via rpm -qf.
func (r *rpmDatabase) OwnerVersion(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, r.rpmPath, "-qf", "--queryformat", "%{VERSION}", path).Output()
	if err != nil {
		return "", fmt.Errorf("rpm ownership query failed for %s: %w", path, err)
	}
	version := stripEpoch(strings.TrimSpace(string(out)))
	if version == "" {
		return "", fmt.Errorf("rpm has no version recorded for owner of %s", path)
	}
	return version, nil
}

// PackageVersion returns the installed version recorded for the package.
func (r *rpmDatabase) PackageVersion(ctx context.Context, name string) (string, error) {
	out, err := exec.CommandContext(ctx, r.rpmPath, "-q", "--queryformat", "%{VERSION}", name).Output()
	if err != nil {
		return "", fmt.Errorf("rpm version query failed for %s: %w", name, err)
	}
	version := stripEpoch(strings.TrimSpace(string(out)))
	if version == "" {
		return "", fmt.Errorf("rpm has no version recorded for %s", name)
	}
	return version, nil
}

// stripEpoch removes a leading "N:" epoch marker from a package version.
func stripEpoch(version string) string {
	return epochPrefix.ReplaceAllString(version, "")
}

// Compile-time interface checks.
var (
	_ igateways.PackageDatabase = (*dpkgDatabase)(nil)
	_ igateways.PackageDatabase = (*rpmDatabase)(nil)
	_ igateways.Runner          = (*SandboxRunner)(nil)
	_ igateways.PathResolver    = (*PathResolver)(nil)
	_ igateways.StringSource    = (*StringsScanner)(nil)
)
