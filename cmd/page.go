package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ntncli/ntn/internal/application"
	"github.com/ntncli/ntn/internal/diagnose"
)

func newPageCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Work with pages",
	}

	cmd.AddCommand(
		newPageListCmd(app),
		newPageGetCmd(app),
		newPageCreateCmd(app),
		newPageUpdateCmd(app),
		newPageAppendCmd(app),
	)

	return cmd
}

func newPageListCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pages visible to the integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := app.service.ListPages(cmd.Context(), limit)
			if err != nil {
				return err
			}

			return writeResult(cmd, list)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of pages (service caps at 100)")

	return cmd
}

func newPageGetCmd(app *app) *cobra.Command {
	var withContent bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Retrieve one page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.service.GetPage(cmd.Context(), args[0], withContent)
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"pageId": args[0]})
			}

			return writeResult(cmd, detail)
		},
	}

	cmd.Flags().BoolVar(&withContent, "content", false, "Also fetch the page's child blocks as text")

	return cmd
}

func newPageCreateCmd(app *app) *cobra.Command {
	var title string
	var parentID string
	var content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page under a parent page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := app.service.CreatePage(cmd.Context(), application.CreatePageInput{
				Title:    title,
				ParentID: parentID,
				Content:  content,
			})
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"parentId": parentID})
			}

			return writeResult(cmd, page)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent page ID")
	cmd.Flags().StringVar(&content, "content", "", "Initial content; each line becomes a paragraph")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("parent")

	return cmd
}

func newPageUpdateCmd(app *app) *cobra.Command {
	var title string
	var archive bool
	var unarchive bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a page's title or archived state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.service.UpdatePage(cmd.Context(), args[0], application.UpdatePageInput{
				Title:     title,
				Archive:   archive,
				Unarchive: unarchive,
			})
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"pageId": args[0]})
			}

			return writeResult(cmd, page)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New page title")
	cmd.Flags().BoolVar(&archive, "archive", false, "Archive the page")
	cmd.Flags().BoolVar(&unarchive, "unarchive", false, "Restore an archived page")

	return cmd
}

func newPageAppendCmd(app *app) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "append <id>",
		Short: "Append paragraph blocks to a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.service.AppendContent(cmd.Context(), args[0], content)
			if err != nil {
				return diagnose.WithContext(err, map[string]string{"pageId": args[0]})
			}

			return writeResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Content to append; each line becomes a paragraph")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}
