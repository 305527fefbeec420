package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yamdb/internal/microservices/http-api/dto"
)

// newSlugCommand builds the list/create/delete commands for categories or genres.
func newSlugCommand(name, plural string) *cobra.Command {
	root := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", plural),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			page := pageFlags(cmd)
			result, err := newClient().ListSlugs(cmd.Context(), plural, search, page)
			if err != nil {
				return err
			}
			for _, item := range result.Results {
				fmt.Printf("%s %s\n", label(item.Slug), item.Name)
			}
			printPageFooter(result, page.Offset)
			return nil
		},
	}
	list.Flags().String("search", "", "Match part of the name")
	addPageFlags(list)

	create := &cobra.Command{
		Use:   "create [slug] [name]",
		Short: fmt.Sprintf("Create a %s (admin)", name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := newClient().CreateSlug(cmd.Context(), plural, dto.SlugRequest{Slug: args[0], Name: args[1]})
			if err != nil {
				return err
			}
			color.Green("✓ Created %s %s (%s)", name, item.Name, item.Slug)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete [slug]",
		Short: fmt.Sprintf("Delete a %s (admin)", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteSlug(cmd.Context(), plural, args[0]); err != nil {
				return err
			}
			color.Green("✓ Deleted %s %s", name, args[0])
			return nil
		},
	}

	root.AddCommand(list, create, del)
	return root
}
