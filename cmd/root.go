package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ntn",
		Short:         "Notion CLI (ntn): pages, databases and auth from the terminal",
		Long:          "ntn talks to the Notion API: log in with an integration token, then list, read, create, update and query pages and databases, with output tuned for scripts and language-model consumers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringP("format", "f", app.settings.Format, "Output format (compact|json|plain)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newPageCmd(app),
		newDatabaseCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
