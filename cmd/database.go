package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ntncli/ntn/internal/application"
	"github.com/ntncli/ntn/internal/diagnose"
)

func newDatabaseCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "database",
		Aliases: []string{"db"},
		Short:   "Work with databases",
	}

	cmd.AddCommand(
		newDatabaseListCmd(app),
		newDatabaseGetCmd(app),
		newDatabaseQueryCmd(app),
		newDatabaseCreateCmd(app),
		newDatabaseUpdateCmd(app),
	)

	return cmd
}

func newDatabaseListCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List databases visible to the integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := app.service.ListDatabases(cmd.Context(), limit)
			if err != nil {
				return err
			}

			return writeResult(cmd, list)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of databases (service caps at 100)")

	return cmd
}

func newDatabaseGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Retrieve one database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.service.GetDatabase(cmd.Context(), args[0])
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"databaseId": args[0]})
			}

			return writeResult(cmd, database)
		},
	}
}

func newDatabaseQueryCmd(app *app) *cobra.Command {
	var filter string
	var sorts string
	var limit int

	cmd := &cobra.Command{
		Use:   "query <id>",
		Short: "Query a database's rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.service.QueryDatabase(cmd.Context(), args[0], application.QueryDatabaseInput{
				Filter: filter,
				Sorts:  sorts,
				Limit:  limit,
			})
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"databaseId": args[0]})
			}

			return writeResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Filter as a JSON object (service filter syntax)")
	cmd.Flags().StringVar(&sorts, "sorts", "", "Sorts as a JSON array (service sort syntax)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows (service caps at 100)")

	return cmd
}

func newDatabaseCreateCmd(app *app) *cobra.Command {
	var title string
	var parentID string
	var schema string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a database under a parent page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := app.service.CreateDatabase(cmd.Context(), application.CreateDatabaseInput{
				Title:    title,
				ParentID: parentID,
				Schema:   schema,
			})
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"parentId": parentID})
			}

			return writeResult(cmd, database)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Database title")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent page ID")
	cmd.Flags().StringVar(&schema, "schema", "", "Property schema as a JSON object")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("parent")

	return cmd
}

func newDatabaseUpdateCmd(app *app) *cobra.Command {
	var title string
	var schema string
	var archive bool
	var unarchive bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a database's title, schema or archived state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.service.UpdateDatabase(cmd.Context(), args[0], application.UpdateDatabaseInput{
				Title:     title,
				Schema:    schema,
				Archive:   archive,
				Unarchive: unarchive,
			})
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"databaseId": args[0]})
			}

			return writeResult(cmd, database)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New database title")
	cmd.Flags().StringVar(&schema, "schema", "", "Replacement property schema as a JSON object")
	cmd.Flags().BoolVar(&archive, "archive", false, "Archive the database")
	cmd.Flags().BoolVar(&unarchive, "unarchive", false, "Restore an archived database")

	return cmd
}
