package main

import (
	"os"

	"github.com/detent/triage/cmd"
	"github.com/detent/triage/internal/sentry"
)

func main() {
	os.Exit(run())
}

func run() int {
	cleanup := sentry.Init(cmd.Version)
	defer cleanup()

	if err := cmd.Execute(); err != nil {
		cmd.ReportError(os.Stderr, err)
		return 1
	}
	return 0
}
