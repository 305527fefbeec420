package service

import (
	"context"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/repository"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page dto.Page) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CommentRequest) (*models.Comment, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.CommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// review resolves the path parent; a review under another title is not found.
func (s *commentService) review(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound(err)
	}
	return review, nil
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page dto.Page) ([]models.Comment, int64, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.GetByReview(ctx, reviewID, page.Limit, page.Offset)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CommentRequest) (*models.Comment, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     *req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// reload with review and author for the response
	return s.Get(ctx, titleID, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.CommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !permission.CanModify(actor, comment.AuthorID) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		comment.Text = *req.Text
		if err := s.commentRepo.Update(ctx, comment); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !permission.CanModify(actor, comment.AuthorID) {
		return ErrPermissionDenied
	}
	return notFound(s.commentRepo.Delete(ctx, comment.ID))
}
