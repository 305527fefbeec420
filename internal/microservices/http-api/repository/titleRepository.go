package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ratingColumn is the mean review score of a title; NULL when it has no reviews.
const ratingColumn = "CAST((SELECT AVG(reviews.score) FROM reviews WHERE reviews.title_id = titles.id) AS DOUBLE PRECISION) AS rating"

// TitleFilter narrows a title listing. Zero values are ignored.
type TitleFilter struct {
	Name         string
	Year         *int
	GenreSlug    string
	CategorySlug string
}

func (f TitleFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		cond, pattern := containsClause("titles.name", f.Name)
		db = db.Where(cond, pattern)
	}
	if f.Year != nil {
		db = db.Where("titles.year = ?", *f.Year)
	}
	if f.GenreSlug != "" {
		db = db.Where("titles.id IN (SELECT tg.title_id FROM title_genres tg JOIN genres g ON g.id = tg.genre_id WHERE g.slug = ?)", f.GenreSlug)
	}
	if f.CategorySlug != "" {
		db = db.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", f.CategorySlug)
	}
	return db
}

type TitleRepo struct {
	db *gorm.DB
}

func NewTitleRepo(db *gorm.DB) *TitleRepo {
	return &TitleRepo{db: db}
}

// withDetails selects the derived rating and preloads the nested references.
func (r *TitleRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Title{}).
		Select("titles.*, " + ratingColumn).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name asc")
		})
}

func (r *TitleRepo) List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	list := make([]models.Title, 0)
	if err := r.withDetails(ctx).
		Scopes(filter.scope).
		Order("titles.id asc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return list, total, nil
}

func (r *TitleRepo) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.withDetails(ctx).Where("titles.id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Exists reports whether a title with the id is present, without loading it.
func (r *TitleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return count > 0, nil
}

// Create inserts the title and links the already-stored genres in t.Genres.
func (r *TitleRepo) Create(ctx context.Context, t *models.Title) error {
	if err := r.db.WithContext(ctx).Omit("Category", "Genres.*").Create(t).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	// GORM will populate t.ID
	return nil
}

// Update writes the scalar columns and, when genres is non-nil, replaces the genre set.
func (r *TitleRepo) Update(ctx context.Context, t *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Title{ID: t.ID}).
			Select("name", "year", "description", "category_id").
			Updates(map[string]interface{}{
				"name":        t.Name,
				"year":        t.Year,
				"description": t.Description,
				"category_id": t.CategoryID,
			})
		if result.Error != nil {
			return fmt.Errorf("update title: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if genres == nil {
			return nil
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", t.ID).Error; err != nil {
			return fmt.Errorf("clear title genres: %w", err)
		}
		for _, g := range genres {
			if err := tx.Exec("INSERT INTO title_genres (title_id, genre_id) VALUES (?, ?)", t.ID, g.ID).Error; err != nil {
				return fmt.Errorf("link title genre: %w", err)
			}
		}
		return nil
	})
}

// Delete removes the title with its reviews, their comments and its genre links.
func (r *TitleRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM comments WHERE review_id IN (SELECT id FROM reviews WHERE title_id = ?)", id).Error; err != nil {
			return fmt.Errorf("delete title comments: %w", err)
		}
		if err := tx.Exec("DELETE FROM reviews WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete title reviews: %w", err)
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete title genres: %w", err)
		}
		result := tx.Delete(&models.Title{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete title: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
