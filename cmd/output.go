package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ntncli/ntn/internal/adapters/render"
)

// writeResult renders a command result to stdout under the format the
// invocation selected. The format travels with the command, never as
// package state.
func writeResult(cmd *cobra.Command, v any) error {
	name, err := cmd.Flags().GetString("format")
	if err != nil {
		name = ""
	}

	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}

	return render.Encode(cmd.OutOrStdout(), v, format)
}
