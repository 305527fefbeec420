package command

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Discuss reviews",
	Long:  `Comments belong to a review, which belongs to a title, so every command takes both ids.`,
}

var listCommentsCmd = &cobra.Command{
	Use:   "list [title-id] [review-id]",
	Short: "List the comments on a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := parseReviewArgs(args)
		if err != nil {
			return err
		}
		page := pageFlags(cmd)
		comments, err := newClient().ListComments(cmd.Context(), titleID, reviewID, page)
		if err != nil {
			return err
		}
		for i := range comments.Results {
			printComment(&comments.Results[i])
			fmt.Println()
		}
		printPageFooter(comments, page.Offset)
		return nil
	},
}

var getCommentCmd = &cobra.Command{
	Use:   "get [title-id] [review-id] [comment-id]",
	Short: "Show a comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, commentID, err := parseCommentArgs(args)
		if err != nil {
			return err
		}
		comment, err := newClient().GetComment(cmd.Context(), titleID, reviewID, commentID)
		if err != nil {
			return err
		}
		printComment(comment)
		return nil
	},
}

var createCommentCmd = &cobra.Command{
	Use:   "create [title-id] [review-id] [text...]",
	Short: "Comment on a review",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := parseReviewArgs(args)
		if err != nil {
			return err
		}
		comment, err := newClient().CreateComment(cmd.Context(), titleID, reviewID, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		color.Green("✓ Comment posted")
		printComment(comment)
		return nil
	},
}

var updateCommentCmd = &cobra.Command{
	Use:   "update [title-id] [review-id] [comment-id] [text...]",
	Short: "Edit a comment you wrote",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, commentID, err := parseCommentArgs(args)
		if err != nil {
			return err
		}
		comment, err := newClient().UpdateComment(cmd.Context(), titleID, reviewID, commentID, strings.Join(args[3:], " "))
		if err != nil {
			return err
		}
		color.Green("✓ Comment updated")
		printComment(comment)
		return nil
	},
}

var deleteCommentCmd = &cobra.Command{
	Use:   "delete [title-id] [review-id] [comment-id]",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, commentID, err := parseCommentArgs(args)
		if err != nil {
			return err
		}
		if err := newClient().DeleteComment(cmd.Context(), titleID, reviewID, commentID); err != nil {
			return err
		}
		color.Green("✓ Comment %d deleted", commentID)
		return nil
	},
}

func parseCommentArgs(args []string) (titleID, reviewID, commentID int64, err error) {
	if titleID, reviewID, err = parseReviewArgs(args); err != nil {
		return 0, 0, 0, err
	}
	if commentID, err = parseID("comment id", args[2]); err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}

func init() {
	commentCmd.AddCommand(listCommentsCmd, getCommentCmd, createCommentCmd, updateCommentCmd, deleteCommentCmd)
	addPageFlags(listCommentsCmd)
}
