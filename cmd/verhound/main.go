package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	orchestrators "github.com/verhound/verhound/internal/domain-orchestrators"
	"github.com/verhound/verhound/internal/external-adapters/logging"
	yamlcfg "github.com/verhound/verhound/internal/external-adapters/yaml"
)

// toolVersion is the version verhound reports for itself.
const toolVersion = "1.2.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options is the parsed CLI surface.
type options struct {
	short   bool
	debug   bool
	help    bool
	version bool
	program string
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "verhound: %v\n\n", err)
		printUsage(stderr)
		return orchestrators.ExitUsage
	}
	if opts.help {
		printUsage(stdout)
		return orchestrators.ExitOK
	}
	if opts.version {
		fmt.Fprintf(stdout, "verhound %s\n", toolVersion)
		return orchestrators.ExitOK
	}

	cfg, err := yamlcfg.Load()
	if err != nil {
		fmt.Fprintf(stderr, "verhound: %v\n", err)
		return orchestrators.ExitFailure
	}

	logger := logging.NewWithWriter(stderr, opts.debug)
	gw := orchestrators.DefaultGateways(cfg, logger)
	orchestrator := orchestrators.NewDetectOrchestrator(cfg, logger, gw, stdout, stderr, opts.short)
	return orchestrator.Run(context.Background(), opts.program)
}

// parseArgs parses CLI arguments. Exactly one program name is required
// unless -h or -v short-circuits.
func parseArgs(args []string) (options, error) {
	fs := pflag.NewFlagSet("verhound", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts options
	fs.BoolVarP(&opts.short, "short", "s", false, "print a single '<program> <version-or-status>' line")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "log every detection attempt to stderr")
	fs.BoolVarP(&opts.help, "help", "h", false, "show usage")
	fs.BoolVarP(&opts.version, "version", "v", false, "print the verhound version")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.help || opts.version {
		return opts, nil
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
		return options{}, fmt.Errorf("missing program name")
	case 1:
		opts.program = rest[0]
		return opts, nil
	default:
		return options{}, fmt.Errorf("expected exactly one program name, got %d", len(rest))
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `verhound - discover the version of an arbitrary command-line program

Usage:
  verhound [-s|--short] [-d|--debug] <program-name>
  verhound -h|--help
  verhound -v|--version

Options:
  -s, --short    print exactly one line: '<program> <version-or-status>'
  -d, --debug    log every detection attempt to stderr
  -h, --help     show this help
  -v, --version  print the verhound version

verhound probes the program with common version flags, mines its help text,
consults the package database, scans the binary's strings and finally runs it
bare - stopping at the first method that yields a version. Untrusted programs
are executed as a restricted user with a scrubbed environment and a hard
timeout.

Exit codes: 0 version found, 1 not found/undetermined/no permission,
2 invalid invocation.
`)
}
