package command

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yamdb/internal/microservices/http-api/dto"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Read and write reviews of a title",
	Long:  `Reviews score a title from 1 to 10. Each user may review a title once.`,
}

var listReviewsCmd = &cobra.Command{
	Use:   "list [title-id]",
	Short: "List the reviews of a title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID("title id", args[0])
		if err != nil {
			return err
		}
		page := pageFlags(cmd)
		reviews, err := newClient().ListReviews(cmd.Context(), titleID, page)
		if err != nil {
			return err
		}
		for i := range reviews.Results {
			printReview(&reviews.Results[i])
			printSeparator()
		}
		printPageFooter(reviews, page.Offset)
		return nil
	},
}

var getReviewCmd = &cobra.Command{
	Use:   "get [title-id] [review-id]",
	Short: "Show a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := parseReviewArgs(args)
		if err != nil {
			return err
		}
		review, err := newClient().GetReview(cmd.Context(), titleID, reviewID)
		if err != nil {
			return err
		}
		printReview(review)
		return nil
	},
}

var createReviewCmd = &cobra.Command{
	Use:   "create [title-id]",
	Short: "Review a title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID("title id", args[0])
		if err != nil {
			return err
		}
		review, err := newClient().CreateReview(cmd.Context(), titleID, reviewRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		color.Green("✓ Review posted")
		printReview(review)
		return nil
	},
}

var updateReviewCmd = &cobra.Command{
	Use:   "update [title-id] [review-id]",
	Short: "Edit a review you wrote (moderators and admins may edit any)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := parseReviewArgs(args)
		if err != nil {
			return err
		}
		review, err := newClient().UpdateReview(cmd.Context(), titleID, reviewID, reviewRequestFromFlags(cmd))
		if err != nil {
			return err
		}
		color.Green("✓ Review updated")
		printReview(review)
		return nil
	},
}

var deleteReviewCmd = &cobra.Command{
	Use:   "delete [title-id] [review-id]",
	Short: "Delete a review and its comments",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := parseReviewArgs(args)
		if err != nil {
			return err
		}
		if err := newClient().DeleteReview(cmd.Context(), titleID, reviewID); err != nil {
			return err
		}
		color.Green("✓ Review %d deleted", reviewID)
		return nil
	},
}

func parseReviewArgs(args []string) (titleID, reviewID int64, err error) {
	if titleID, err = parseID("title id", args[0]); err != nil {
		return 0, 0, err
	}
	if reviewID, err = parseID("review id", args[1]); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func reviewRequestFromFlags(cmd *cobra.Command) dto.ReviewRequest {
	return dto.ReviewRequest{
		Text:  changedString(cmd, "text"),
		Score: changedInt(cmd, "score"),
	}
}

func init() {
	reviewCmd.AddCommand(listReviewsCmd, getReviewCmd, createReviewCmd, updateReviewCmd, deleteReviewCmd)
	addPageFlags(listReviewsCmd)

	for _, c := range []*cobra.Command{createReviewCmd, updateReviewCmd} {
		c.Flags().StringP("text", "t", "", "Review text")
		c.Flags().IntP("score", "s", 0, "Score from 1 to 10")
	}
	createReviewCmd.MarkFlagRequired("text")
	createReviewCmd.MarkFlagRequired("score")
}
