package service

import (
	"context"
	"errors"
	"fmt"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page dto.Page) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.TitleRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.TitleRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    *repository.TitleRepo
	categoryRepo repository.SlugRepository[models.Category]
	genreRepo    repository.SlugRepository[models.Genre]
}

func NewTitleService(
	titleRepo *repository.TitleRepo,
	categoryRepo repository.SlugRepository[models.Category],
	genreRepo repository.SlugRepository[models.Genre],
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// List rejects genre or category filters that name no existing row.
func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page dto.Page) ([]models.Title, int64, error) {
	if filter.CategorySlug != "" {
		if _, err := s.categoryRepo.GetBySlug(ctx, filter.CategorySlug); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, invalid(ErrUnknownCategory, "category", dto.MsgInvalidChoice)
			}
			return nil, 0, err
		}
	}
	if filter.GenreSlug != "" {
		if _, err := s.genreRepo.GetBySlug(ctx, filter.GenreSlug); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, invalid(ErrUnknownGenre, "genre", dto.MsgInvalidChoice)
			}
			return nil, 0, err
		}
	}
	return s.titleRepo.List(ctx, filter, page.Limit, page.Offset)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, req dto.TitleRequest) (*models.Title, error) {
	title := &models.Title{}
	genres, err := s.apply(ctx, title, req)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

// Update changes only the fields present in req; a present genre list
// replaces the whole set.
func (s *titleService) Update(ctx context.Context, id int64, req dto.TitleRequest) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	genres, err := s.apply(ctx, title, req)
	if err != nil {
		return nil, err
	}
	if err := s.titleRepo.Update(ctx, title, genres); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return notFound(s.titleRepo.Delete(ctx, id))
}

// apply copies req onto title and resolves slug references. The returned
// genres are nil when req leaves them unchanged.
func (s *titleService) apply(ctx context.Context, title *models.Title, req dto.TitleRequest) ([]models.Genre, error) {
	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}

	switch slug := req.Category.Value; {
	case !req.Category.Set:
	case slug == nil:
		title.CategoryID = nil
		title.Category = nil
	default:
		category, err := s.categoryRepo.GetBySlug(ctx, *slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalid(ErrUnknownCategory, "category", missingSlug(*slug))
			}
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if req.Genre == nil {
		return nil, nil
	}
	genres, err := s.genreRepo.GetBySlugs(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range req.Genre {
		if !found[slug] {
			return nil, invalid(ErrUnknownGenre, "genre", missingSlug(slug))
		}
	}
	return genres, nil
}

func missingSlug(slug string) string {
	return fmt.Sprintf("Object with slug=%s does not exist.", slug)
}
