package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	orchestrators "github.com/verhound/verhound/internal/domain-orchestrators"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "program only",
			args: []string{"git"},
			want: options{program: "git"},
		},
		{
			name: "short flag",
			args: []string{"-s", "git"},
			want: options{short: true, program: "git"},
		},
		{
			name: "long flags",
			args: []string{"--short", "--debug", "git"},
			want: options{short: true, debug: true, program: "git"},
		},
		{
			name: "flags after the program",
			args: []string{"git", "-d"},
			want: options{debug: true, program: "git"},
		},
		{
			name: "help needs no program",
			args: []string{"-h"},
			want: options{help: true},
		},
		{
			name: "version needs no program",
			args: []string{"--version"},
			want: options{version: true},
		},
		{
			name:    "no arguments",
			args:    []string{},
			wantErr: true,
		},
		{
			name:    "two programs",
			args:    []string{"git", "svn"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus", "git"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--help"}, &out, &errOut); code != orchestrators.ExitOK {
		t.Fatalf("run(--help) = %d, want %d", code, orchestrators.ExitOK)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("help output missing usage: %q", out.String())
	}
}

func TestRun_Version(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-v"}, &out, &errOut); code != orchestrators.ExitOK {
		t.Fatalf("run(-v) = %d, want %d", code, orchestrators.ExitOK)
	}
	if got := out.String(); got != "verhound "+toolVersion+"\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	for _, args := range [][]string{{}, {"one", "two"}, {"--bogus", "git"}} {
		var out, errOut bytes.Buffer
		if code := run(args, &out, &errOut); code != orchestrators.ExitUsage {
			t.Errorf("run(%v) = %d, want %d", args, code, orchestrators.ExitUsage)
		}
		if !strings.Contains(errOut.String(), "Usage:") {
			t.Errorf("run(%v) stderr missing usage: %q", args, errOut.String())
		}
	}
}

func TestRun_Detection(t *testing.T) {
	// Hermetic config: no sandbox user, so the probe runs directly.
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("restricted_user: \"\"\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("VERHOUND_CONFIG", cfgPath)

	dir := t.TempDir()
	script := "#!/bin/sh\n" + `case "$1" in
--version) echo "verytool version 5.5.5"; exit 0 ;;
*) echo "verytool: unknown option" >&2; exit 2 ;;
esac` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "verytool"), []byte(script), 0o755); err != nil {
		t.Fatalf("installing script: %v", err)
	}
	t.Setenv("PATH", dir+":/usr/bin:/bin")

	var out, errOut bytes.Buffer
	if code := run([]string{"-s", "verytool"}, &out, &errOut); code != orchestrators.ExitOK {
		t.Fatalf("run() = %d, want %d (stderr: %s)", code, orchestrators.ExitOK, errOut.String())
	}
	if got := out.String(); got != "verytool 5.5.5\n" {
		t.Errorf("output = %q, want %q", got, "verytool 5.5.5\n")
	}
}
