package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// CommentRequest carries only the text; review and author come from the
// path and the token.
type CommentRequest struct {
	Text *string `json:"text"`
}

// Validate checks presence rules; full is set for POST and PUT.
func (r CommentRequest) Validate(full bool) map[string]string {
	errs := map[string]string{}
	requireText(errs, "text", r.Text, full)
	return errs
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Review  string    `json:"review"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToCommentResponse expects Review and Author to be loaded.
func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Review:  c.Review.Text,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}

func FromModelsToCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, FromModelToCommentResponse(&comments[i]))
	}
	return out
}
