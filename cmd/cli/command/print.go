package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yamdb/cmd/cli/command/client"
	"yamdb/internal/microservices/http-api/dto"
)

var (
	label = color.New(color.FgCyan).SprintFunc()
	faint = color.New(color.FgHiBlack).SprintFunc()
)

func printField(name string, value any) {
	fmt.Printf("%s %v\n", label(name+":"), value)
}

func printSeparator() {
	fmt.Println(faint(strings.Repeat("-", 50)))
}

// printPageFooter shows the position in a paginated listing.
func printPageFooter[T any](page *dto.PaginatedResponse[T], offset int) {
	if page.Count == 0 {
		fmt.Println("Nothing found.")
		return
	}
	from := offset + 1
	to := offset + len(page.Results)
	fmt.Println(faint(fmt.Sprintf("Showing %d-%d of %d", from, to, page.Count)))
	if page.Next != nil {
		fmt.Println(faint("Next: " + *page.Next))
	}
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "Page size (server default 10, at most 100)")
	cmd.Flags().Int("offset", 0, "Number of items to skip")
}

func pageFlags(cmd *cobra.Command) client.Page {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	return client.Page{Limit: limit, Offset: offset}
}

func parseID(name, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return id, nil
}

// changedString returns a pointer to the flag value, or nil when the flag was not set.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func printUser(u *dto.UserResponse) {
	printField("Username", u.Username)
	printField("Email", u.Email)
	printField("Role", u.Role)
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		printField("Name", name)
	}
	if u.Bio != "" {
		printField("Bio", u.Bio)
	}
}

func printTitle(t *dto.TitleResponse) {
	printField("ID", t.ID)
	printField("Name", t.Name)
	if t.Year != nil {
		printField("Year", *t.Year)
	}
	if t.Rating != nil {
		printField("Rating", fmt.Sprintf("%.1f", *t.Rating))
	} else {
		printField("Rating", faint("no reviews"))
	}
	if t.Category != nil {
		printField("Category", t.Category.Name)
	}
	if len(t.Genre) > 0 {
		names := make([]string, 0, len(t.Genre))
		for _, g := range t.Genre {
			names = append(names, g.Name)
		}
		printField("Genres", strings.Join(names, ", "))
	}
	if t.Description != nil && *t.Description != "" {
		printField("Description", *t.Description)
	}
}

func printReview(r *dto.ReviewResponse) {
	printField("ID", r.ID)
	printField("Author", r.Author)
	printField("Score", fmt.Sprintf("%d/10", r.Score))
	printField("Published", formatDate(r.PubDate))
	fmt.Println(r.Text)
}

func printComment(c *dto.CommentResponse) {
	fmt.Printf("%s %s %s\n", label(fmt.Sprintf("#%d", c.ID)), c.Author, faint(formatDate(c.PubDate)))
	fmt.Println(c.Text)
}
