package service

import (
	"context"
	"testing"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentCreate_UsesPathReview(t *testing.T) {
	comments := new(MockCommentRepository)
	reviews := new(MockReviewRepository)
	svc := NewCommentService(comments, reviews)
	actor := &models.User{ID: "author"}

	reviews.On("GetByID", mock.Anything, int64(1), int64(2)).Return(&models.Review{ID: 2, TitleID: 1}, nil)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.ReviewID == 2 && c.AuthorID == "author" && c.Text == "agreed"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 5
	}).Return(nil)
	comments.On("GetByID", mock.Anything, int64(2), int64(5)).Return(&models.Comment{ID: 5, ReviewID: 2, AuthorID: "author", Text: "agreed"}, nil)

	comment, err := svc.Create(context.Background(), actor, 1, 2, dto.CommentRequest{Text: strPtr("agreed")})

	require.NoError(t, err)
	assert.Equal(t, int64(5), comment.ID)
	comments.AssertExpectations(t)
}

func TestComment_ReviewUnderOtherTitle(t *testing.T) {
	comments := new(MockCommentRepository)
	reviews := new(MockReviewRepository)
	svc := NewCommentService(comments, reviews)

	reviews.On("GetByID", mock.Anything, int64(9), int64(2)).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.List(context.Background(), 9, 2, dto.Page{Limit: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), 9, 2, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), &models.User{ID: "a"}, 9, 2, dto.CommentRequest{Text: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentModify_Permissions(t *testing.T) {
	comments := new(MockCommentRepository)
	reviews := new(MockReviewRepository)
	svc := NewCommentService(comments, reviews)
	stored := &models.Comment{ID: 5, ReviewID: 2, AuthorID: "author", Text: "old"}

	reviews.On("GetByID", mock.Anything, int64(1), int64(2)).Return(&models.Review{ID: 2}, nil)
	comments.On("GetByID", mock.Anything, int64(2), int64(5)).Return(stored, nil)
	comments.On("Update", mock.Anything, stored).Return(nil)
	comments.On("Delete", mock.Anything, int64(5)).Return(nil)

	_, err := svc.Update(context.Background(), &models.User{ID: "other", Role: models.RoleUser}, 1, 2, 5, dto.CommentRequest{Text: strPtr("hijack")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "old", stored.Text)

	err = svc.Delete(context.Background(), &models.User{ID: "other", Role: models.RoleUser}, 1, 2, 5)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(context.Background(), &models.User{ID: "mod", Role: models.RoleModerator}, 1, 2, 5, dto.CommentRequest{Text: strPtr("moderated")})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Text)

	assert.NoError(t, svc.Delete(context.Background(), &models.User{ID: "author"}, 1, 2, 5))
	comments.AssertExpectations(t)
}
