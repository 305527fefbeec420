package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// SlugRepository persists reference entities (categories, genres) keyed by slug.
type SlugRepository[T models.SlugEntity] interface {
	List(ctx context.Context, search string, limit, offset int) ([]T, int64, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]T, error)
	Create(ctx context.Context, entity *T) error
	Delete(ctx context.Context, slug string) error
}

type slugRepository[T models.SlugEntity] struct {
	db   *gorm.DB
	kind string
	// detach unlinks titles from the entity before it is deleted
	detach string
}

func NewCategoryRepository(db *gorm.DB) SlugRepository[models.Category] {
	return &slugRepository[models.Category]{
		db:     db,
		kind:   "category",
		detach: "UPDATE titles SET category_id = NULL WHERE category_id IN (SELECT id FROM categories WHERE slug = ?)",
	}
}

func NewGenreRepository(db *gorm.DB) SlugRepository[models.Genre] {
	return &slugRepository[models.Genre]{
		db:     db,
		kind:   "genre",
		detach: "DELETE FROM title_genres WHERE genre_id IN (SELECT id FROM genres WHERE slug = ?)",
	}
}

// List orders by name; search is a case-insensitive match on part of the name.
func (r *slugRepository[T]) List(ctx context.Context, search string, limit, offset int) ([]T, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		cond, pattern := containsClause("name", search)
		return db.Where(cond, pattern)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.kind, err)
	}

	list := make([]T, 0)
	if err := r.db.WithContext(ctx).
		Scopes(filter).
		Order("name asc").
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.kind, err)
	}
	return list, total, nil
}

func (r *slugRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetBySlugs returns the rows that exist; callers compare lengths to spot unknown slugs.
func (r *slugRepository[T]) GetBySlugs(ctx context.Context, slugs []string) ([]T, error) {
	list := make([]T, 0, len(slugs))
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get %s by slugs: %w", r.kind, err)
	}
	return list, nil
}

// Create returns gorm.ErrDuplicatedKey when the slug is taken.
func (r *slugRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.kind, err)
	}
	return nil
}

func (r *slugRepository[T]) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(r.detach, slug).Error; err != nil {
			return fmt.Errorf("detach %s: %w", r.kind, err)
		}
		result := tx.Where("slug = ?", slug).Delete(new(T))
		if result.Error != nil {
			return fmt.Errorf("delete %s: %w", r.kind, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
