package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
	}

	cmd.AddCommand(newAuthLoginCmd(app), newAuthLogoutCmd(app), newAuthStatusCmd(app))

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login [token]",
		Short: "Validate an integration token and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			}
			if token == "" {
				token = os.Getenv("NOTION_TOKEN")
			}

			result, err := app.service.Login(cmd.Context(), token)
			if err != nil {
				return err
			}

			if result.Workspace != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to workspace %q\n", result.Workspace)
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			}
			return nil
		},
	}
}

func newAuthLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.Logout(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newAuthStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored authentication state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.service.Status(cmd.Context())
			if err != nil {
				return err
			}

			return writeResult(cmd, status)
		},
	}
}
