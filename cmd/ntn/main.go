package main

import (
	"fmt"
	"os"

	"github.com/ntncli/ntn/cmd"
	"github.com/ntncli/ntn/internal/diagnose"
)

func main() {
	if err := cmd.Execute(); err != nil {
		diagnostic := diagnose.Classify(err, nil)
		_, _ = fmt.Fprintln(os.Stderr, diagnostic.Message)
		os.Exit(diagnostic.ExitCode)
	}
}
