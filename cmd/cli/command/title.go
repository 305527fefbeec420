package command

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yamdb/cmd/cli/command/client"
	"yamdb/internal/microservices/http-api/dto"
)

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Browse and manage titles",
	Long:  `Browse titles with their average rating. Creating, editing and deleting titles requires an admin account.`,
}

var listTitlesCmd = &cobra.Command{
	Use:   "list",
	Short: "List titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f client.TitleFilter
		f.Name, _ = cmd.Flags().GetString("name")
		f.Year, _ = cmd.Flags().GetInt("year")
		f.Genre, _ = cmd.Flags().GetString("genre")
		f.Category, _ = cmd.Flags().GetString("category")
		page := pageFlags(cmd)

		titles, err := newClient().ListTitles(cmd.Context(), f, page)
		if err != nil {
			return err
		}
		for i := range titles.Results {
			printTitle(&titles.Results[i])
			printSeparator()
		}
		printPageFooter(titles, page.Offset)
		return nil
	},
}

var getTitleCmd = &cobra.Command{
	Use:   "get [title-id]",
	Short: "Show a title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("title id", args[0])
		if err != nil {
			return err
		}
		title, err := newClient().GetTitle(cmd.Context(), id)
		if err != nil {
			return err
		}
		printTitle(title)
		return nil
	},
}

var createTitleCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a title (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, err := newClient().CreateTitle(cmd.Context(), titleRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		color.Green("✓ Title created")
		printTitle(title)
		return nil
	},
}

var updateTitleCmd = &cobra.Command{
	Use:   "update [title-id]",
	Short: "Edit a title (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("title id", args[0])
		if err != nil {
			return err
		}
		title, err := newClient().UpdateTitle(cmd.Context(), id, titleRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		color.Green("✓ Title updated")
		printTitle(title)
		return nil
	},
}

var deleteTitleCmd = &cobra.Command{
	Use:   "delete [title-id]",
	Short: "Delete a title with its reviews (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("title id", args[0])
		if err != nil {
			return err
		}
		if err := newClient().DeleteTitle(cmd.Context(), id); err != nil {
			return err
		}
		color.Green("✓ Title %d deleted", id)
		return nil
	},
}

func addTitleFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Title name")
	cmd.Flags().Int("year", 0, "Release year")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("category", "", `Category slug; pass "" to detach the category`)
	cmd.Flags().StringSlice("genre", nil, "Genre slugs, comma separated or repeated")
}

func titleRequestFromFlags(cmd *cobra.Command) dto.TitleRequest {
	req := dto.TitleRequest{
		Name:        changedString(cmd, "name"),
		Year:        changedInt(cmd, "year"),
		Description: changedString(cmd, "description"),
	}
	if slug := changedString(cmd, "category"); slug != nil {
		req.Category = dto.SlugOf(*slug)
		if *slug == "" {
			req.Category = dto.NullSlug()
		}
	}
	if cmd.Flags().Changed("genre") {
		req.Genre, _ = cmd.Flags().GetStringSlice("genre")
	}
	return req
}

func init() {
	titleCmd.AddCommand(listTitlesCmd, getTitleCmd, createTitleCmd, updateTitleCmd, deleteTitleCmd)

	listTitlesCmd.Flags().String("name", "", "Match part of the name")
	listTitlesCmd.Flags().Int("year", 0, "Exact release year")
	listTitlesCmd.Flags().String("genre", "", "Genre slug")
	listTitlesCmd.Flags().String("category", "", "Category slug")
	addPageFlags(listTitlesCmd)

	addTitleFlags(createTitleCmd)
	createTitleCmd.MarkFlagRequired("name")
	addTitleFlags(updateTitleCmd)
}
