package service

import (
	"context"
	"errors"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// TitleLookup is the part of the title store reviews depend on.
type TitleLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ReviewService interface {
	List(ctx context.Context, titleID int64, page dto.Page) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, actor *models.User, titleID int64, req dto.ReviewRequest) (*models.Review, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.ReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titles     TitleLookup
}

func NewReviewService(reviewRepo repository.ReviewRepository, titles TitleLookup) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titles:     titles,
	}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	ok, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, page dto.Page) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.GetByTitle(ctx, titleID, page.Limit, page.Offset)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound(err)
	}
	return review, nil
}

// Create stores actor's review of the title. A second review by the same
// author is a validation error; the unique index settles concurrent attempts.
func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.ReviewRequest) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateReview()
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     *req.Text,
		Score:    *req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateReview()
		}
		return nil, err
	}

	// reload with title and author for the response
	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.ReviewRequest) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permission.CanModify(actor, review.AuthorID) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !permission.CanModify(actor, review.AuthorID) {
		return ErrPermissionDenied
	}
	return notFound(s.reviewRepo.Delete(ctx, review.ID))
}

func duplicateReview() error {
	return invalid(ErrDuplicateReview, "non_field_errors", "Only one review is allowed")
}
