package orchestrators

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verhound/verhound/internal/domain/entities"
)

// installTool drops an executable script on a private PATH and returns its
// directory.
func installTool(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
		t.Fatalf("installing %s: %v", name, err)
	}
	return dir
}

// sandboxlessConfig disables the restricted user so the run needs no sudo
// setup.
func sandboxlessConfig() *entities.Config {
	cfg := entities.DefaultConfig()
	cfg.RestrictedUser = ""
	return cfg
}

// hermeticGateways wires the production adapters but detaches the host
// package database, so results never depend on what the host has installed.
func hermeticGateways(cfg *entities.Config) Gateways {
	gw := DefaultGateways(cfg, nil)
	gw.PackageDB = nil
	return gw
}

// stubPackageDB answers every lookup with a fixed version.
type stubPackageDB struct {
	version string
}

func (s *stubPackageDB) Name() string { return "stubdb" }

func (s *stubPackageDB) OwnerVersion(_ context.Context, _ string) (string, error) {
	return s.version, nil
}

func (s *stubPackageDB) PackageVersion(_ context.Context, _ string) (string, error) {
	return s.version, nil
}

func TestDetectOrchestrator_Run_FlagProbe(t *testing.T) {
	dir := installTool(t, "verytool", `case "$1" in
--version) echo "verytool version 7.7.7"; exit 0 ;;
*) echo "verytool: unknown option" >&2; exit 2 ;;
esac`)
	t.Setenv("PATH", dir+":/usr/bin:/bin")

	cfg := sandboxlessConfig()
	var out, errOut bytes.Buffer
	o := NewDetectOrchestrator(cfg, nil, hermeticGateways(cfg), &out, &errOut, true)
	code := o.Run(context.Background(), "verytool")

	if code != ExitOK {
		t.Fatalf("Run() = %d, want %d (stderr: %s)", code, ExitOK, errOut.String())
	}
	if got := out.String(); got != "verytool 7.7.7\n" {
		t.Errorf("short output = %q, want %q", got, "verytool 7.7.7\n")
	}
}

func TestDetectOrchestrator_Run_LongReport(t *testing.T) {
	dir := installTool(t, "verytool", `case "$1" in
--version) echo "verytool version 7.7.7"; exit 0 ;;
*) echo "verytool: unknown option" >&2; exit 2 ;;
esac`)
	t.Setenv("PATH", dir+":/usr/bin:/bin")

	cfg := sandboxlessConfig()
	var out, errOut bytes.Buffer
	o := NewDetectOrchestrator(cfg, nil, hermeticGateways(cfg), &out, &errOut, false)
	code := o.Run(context.Background(), "verytool")

	if code != ExitOK {
		t.Fatalf("Run() = %d, want %d", code, ExitOK)
	}
	got := out.String()
	if !strings.Contains(got, "flag '--version'") {
		t.Errorf("long output missing method header: %q", got)
	}
	if !strings.Contains(got, "verytool version 7.7.7") {
		t.Errorf("long output missing evidence: %q", got)
	}
}

func TestDetectOrchestrator_Run_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	cfg := sandboxlessConfig()
	var out, errOut bytes.Buffer
	o := NewDetectOrchestrator(cfg, nil, hermeticGateways(cfg), &out, &errOut, true)
	code := o.Run(context.Background(), "no-such-tool")

	if code != ExitFailure {
		t.Fatalf("Run() = %d, want %d", code, ExitFailure)
	}
	if got := out.String(); got != "no-such-tool not-found\n" {
		t.Errorf("output = %q, want %q", got, "no-such-tool not-found\n")
	}
}

func TestDetectOrchestrator_Run_Undetermined(t *testing.T) {
	// Prints nothing version-shaped no matter how it is invoked, and the
	// script body itself carries no dotted numbers for the strings scan.
	dir := installTool(t, "mutetool", `exit 3`)
	t.Setenv("PATH", dir+":/usr/bin:/bin")

	cfg := sandboxlessConfig()
	var out, errOut bytes.Buffer
	o := NewDetectOrchestrator(cfg, nil, hermeticGateways(cfg), &out, &errOut, true)
	code := o.Run(context.Background(), "mutetool")

	if code != ExitFailure {
		t.Fatalf("Run() = %d, want %d", code, ExitFailure)
	}
	if got := out.String(); got != "mutetool undetermined\n" {
		t.Errorf("output = %q, want %q", got, "mutetool undetermined\n")
	}
}

func TestDetectOrchestrator_Run_AliasSuffix(t *testing.T) {
	dir := installTool(t, "python3", `case "$1" in
--version) echo "Python 3.11.2"; exit 0 ;;
*) exit 2 ;;
esac`)
	t.Setenv("PATH", dir+":/usr/bin:/bin")

	cfg := sandboxlessConfig()
	var out, errOut bytes.Buffer
	o := NewDetectOrchestrator(cfg, nil, hermeticGateways(cfg), &out, &errOut, true)
	code := o.Run(context.Background(), "python")

	if code != ExitOK {
		t.Fatalf("Run() = %d, want %d (stderr: %s)", code, ExitOK, errOut.String())
	}
	// The report names the substituted program, not the requested alias.
	if got := out.String(); got != "python3 3.11.2\n" {
		t.Errorf("output = %q, want %q", got, "python3 3.11.2\n")
	}
}

func TestDetectOrchestrator_Run_InjectedPackageDatabase(t *testing.T) {
	// The target answers nothing, so detection must come from the injected
	// database rather than whatever the host one would say.
	dir := installTool(t, "silenttool", `exit 2`)
	t.Setenv("PATH", dir+":/usr/bin:/bin")

	cfg := sandboxlessConfig()
	gw := hermeticGateways(cfg)
	gw.PackageDB = &stubPackageDB{version: "4.4.4"}

	var out, errOut bytes.Buffer
	o := NewDetectOrchestrator(cfg, nil, gw, &out, &errOut, true)
	code := o.Run(context.Background(), "silenttool")

	if code != ExitOK {
		t.Fatalf("Run() = %d, want %d (stderr: %s)", code, ExitOK, errOut.String())
	}
	if got := out.String(); got != "silenttool 4.4.4\n" {
		t.Errorf("output = %q, want %q", got, "silenttool 4.4.4\n")
	}
}
