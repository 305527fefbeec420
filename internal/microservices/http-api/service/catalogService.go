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

// SlugService manages one kind of slug-addressed reference entity.
type SlugService[T models.SlugEntity] struct {
	repo  repository.SlugRepository[T]
	kind  string
	build func(name, slug string) T
}

func NewCategoryService(repo repository.SlugRepository[models.Category]) *SlugService[models.Category] {
	return &SlugService[models.Category]{
		repo: repo,
		kind: "category",
		build: func(name, slug string) models.Category {
			return models.Category{Name: name, Slug: slug}
		},
	}
}

func NewGenreService(repo repository.SlugRepository[models.Genre]) *SlugService[models.Genre] {
	return &SlugService[models.Genre]{
		repo: repo,
		kind: "genre",
		build: func(name, slug string) models.Genre {
			return models.Genre{Name: name, Slug: slug}
		},
	}
}

func (s *SlugService[T]) List(ctx context.Context, search string, page dto.Page) ([]T, int64, error) {
	return s.repo.List(ctx, search, page.Limit, page.Offset)
}

func (s *SlugService[T]) Create(ctx context.Context, req dto.SlugRequest) (*T, error) {
	entity := s.build(req.Name, req.Slug)
	if err := s.repo.Create(ctx, &entity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid(ErrSlugTaken, "slug", fmt.Sprintf("%s with this slug already exists.", s.kind))
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SlugService[T]) Delete(ctx context.Context, slug string) error {
	return notFound(s.repo.Delete(ctx, slug))
}
