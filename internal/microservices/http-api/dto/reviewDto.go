package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// ReviewRequest carries only text and score; title and author come from the
// path and the token.
type ReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

// Validate checks presence rules; full is set for POST and PUT.
func (r ReviewRequest) Validate(full bool) map[string]string {
	errs := map[string]string{}
	requireText(errs, "text", r.Text, full)
	if r.Score == nil && full {
		errs["score"] = MsgRequired
	}
	return errs
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToReviewResponse expects Title and Author to be loaded.
func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Title:   r.Title.Name,
		Author:  r.Author.Username,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

func FromModelsToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, FromModelToReviewResponse(&reviews[i]))
	}
	return out
}
