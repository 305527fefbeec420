package service

import (
	"context"
	"testing"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	titles     TitleService
	categories *SlugService[models.Category]
	genres     *SlugService[models.Genre]
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	db := testutil.SetupTestDB(t)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	return &catalogFixture{
		titles:     NewTitleService(repository.NewTitleRepo(db), categoryRepo, genreRepo),
		categories: NewCategoryService(categoryRepo),
		genres:     NewGenreService(genreRepo),
	}
}

func (f *catalogFixture) seed(t *testing.T) {
	ctx := context.Background()
	_, err := f.categories.Create(ctx, dto.SlugRequest{Name: "Movie", Slug: "movie"})
	require.NoError(t, err)
	for _, g := range []dto.SlugRequest{{Name: "Drama", Slug: "drama"}, {Name: "Comedy", Slug: "comedy"}} {
		_, err := f.genres.Create(ctx, g)
		require.NoError(t, err)
	}
}

func TestSlugService_DuplicateSlug(t *testing.T) {
	f := newCatalogFixture(t)
	f.seed(t)

	_, err := f.categories.Create(context.Background(), dto.SlugRequest{Name: "Film", Slug: "movie"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrSlugTaken)
	assert.Equal(t, "category with this slug already exists.", verr.Fields["slug"])

	assert.ErrorIs(t, f.genres.Delete(context.Background(), "missing"), ErrNotFound)
}

func TestTitleService_CreateResolvesSlugs(t *testing.T) {
	f := newCatalogFixture(t)
	f.seed(t)

	title, err := f.titles.Create(context.Background(), dto.TitleRequest{
		Name:     strPtr("Heat"),
		Year:     intPtr(1995),
		Category: dto.SlugOf("movie"),
		Genre:    []string{"drama", "comedy"},
	})

	require.NoError(t, err)
	assert.NotZero(t, title.ID)
	require.NotNil(t, title.Category)
	assert.Equal(t, "movie", title.Category.Slug)
	assert.Len(t, title.Genres, 2)
	assert.Nil(t, title.Rating)
}

func TestTitleService_UnknownSlugs(t *testing.T) {
	f := newCatalogFixture(t)
	f.seed(t)
	ctx := context.Background()

	_, err := f.titles.Create(ctx, dto.TitleRequest{Name: strPtr("X"), Category: dto.SlugOf("book")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Object with slug=book does not exist.", verr.Fields["category"])

	_, err = f.titles.Create(ctx, dto.TitleRequest{Name: strPtr("X"), Genre: []string{"drama", "horror"}})
	assert.ErrorIs(t, err, ErrUnknownGenre)

	_, _, err = f.titles.List(ctx, repository.TitleFilter{GenreSlug: "horror"}, dto.Page{Limit: 10})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, dto.MsgInvalidChoice, verr.Fields["genre"])

	_, _, err = f.titles.List(ctx, repository.TitleFilter{CategorySlug: "book"}, dto.Page{Limit: 10})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestTitleService_PartialUpdate(t *testing.T) {
	f := newCatalogFixture(t)
	f.seed(t)
	ctx := context.Background()

	created, err := f.titles.Create(ctx, dto.TitleRequest{
		Name:        strPtr("Heat"),
		Description: strPtr("crime"),
		Genre:       []string{"drama"},
	})
	require.NoError(t, err)

	updated, err := f.titles.Update(ctx, created.ID, dto.TitleRequest{Year: intPtr(1995)})
	require.NoError(t, err)
	assert.Equal(t, "Heat", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "crime", *updated.Description)
	assert.Equal(t, 1995, *updated.Year)
	assert.Len(t, updated.Genres, 1)

	updated, err = f.titles.Update(ctx, created.ID, dto.TitleRequest{Genre: []string{}, Category: dto.SlugOf("movie")})
	require.NoError(t, err)
	assert.Empty(t, updated.Genres)
	require.NotNil(t, updated.Category)

	updated, err = f.titles.Update(ctx, created.ID, dto.TitleRequest{Name: strPtr("Heat (1995)")})
	require.NoError(t, err)
	require.NotNil(t, updated.Category, "an absent category leaves it in place")

	updated, err = f.titles.Update(ctx, created.ID, dto.TitleRequest{Category: dto.NullSlug()})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)
	assert.Nil(t, updated.CategoryID)
	reloaded, err := f.titles.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Category)

	_, err = f.titles.Update(ctx, created.ID+100, dto.TitleRequest{Name: strPtr("nope")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTitleService_GetAndDeleteMissing(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.titles.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.titles.Delete(context.Background(), 42), ErrNotFound)
}
