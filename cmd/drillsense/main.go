package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/drillsense/internal/version"
)

// errUsage marks a bad invocation; main exits 2 without logging.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("drillsense: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "render":
		return handleRender(rest, stdout)
	case "serve":
		return handleServe(rest, stdout)
	case "classify":
		return handleClassify(rest, stdout)
	case "segments":
		return handleSegments(rest, stdout)
	case "version":
		fmt.Fprintln(stdout, version.String())
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", command)
		printUsage(stdout)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `drillsense - drill hole deviation reports

Usage: drillsense <command> [options]

Commands:
  render     Render the dashboard, path page, charts and previews to a directory
  serve      Render, then serve the site locally with /debug/ pages
  classify   Classify a single lateral/angular deviation reading
  segments   Print the per-segment comparison of planned and actual paths
  version    Show drillsense version
  help       Show this help message

Common Flags:
  --config <file>      JSON config (thresholds, bar scales, previews, chart theme)
  --snapshot <file>    Telemetry snapshot JSON (default: built-in demo snapshot)
  --threshold <m>      Lateral threshold override in metres
  --strict             Reject planned/actual paths of different lengths
  -v                   Log per-step render timings

Examples:
  # Render the demo snapshot
  drillsense render --out site

  # Serve a snapshot file, re-rendering every 30 seconds
  drillsense serve --snapshot hole-42.json --refresh 30s

  # Classify 12 cm / 3.1 degrees
  drillsense classify --lateral-cm 12 --angular-deg 3.1`)
}
