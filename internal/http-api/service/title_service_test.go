package service

import (
	"context"
	"testing"
	"time"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

type titleFixture struct {
	titles     *MockTitleRepository
	categories *MockCategoryRepository
	genres     *MockGenreRepository
	svc        TitleService
}

func newTitleFixture() *titleFixture {
	f := &titleFixture{
		titles:     new(MockTitleRepository),
		categories: new(MockCategoryRepository),
		genres:     new(MockGenreRepository),
	}
	years := YearValidator{
		Horizon: DefaultYearHorizon,
		Now:     func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	f.svc = NewTitleService(f.titles, f.categories, f.genres, years)
	return f
}

func TestTitleService_Create(t *testing.T) {
	f := newTitleFixture()
	books := &models.Category{ID: 3, Name: "Books", Slug: "books"}
	drama := models.Genre{ID: 7, Name: "Drama", Slug: "drama"}

	f.categories.On("FindBySlug", mock.Anything, "books").Return(books, nil)
	f.genres.On("FindBySlugs", mock.Anything, []string{"drama"}).Return([]models.Genre{drama}, nil)
	f.titles.On("Create", mock.Anything, mock.MatchedBy(func(tt *models.Title) bool {
		return tt.Name == "Dune" && tt.CategoryID != nil && *tt.CategoryID == 3
	}), []models.Genre{drama}).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Title).ID = 11
	}).Return(nil)
	f.titles.On("GetByID", mock.Anything, int64(11)).
		Return(&models.Title{ID: 11, Name: "Dune", Category: books, Genres: []models.Genre{drama}}, nil)

	got, err := f.svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Dune",
		Year:     intPtr(2040),
		Genre:    []string{"drama", "drama"},
		Category: strPtr("books"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	f.titles.AssertExpectations(t)
}

func TestTitleService_CreateRejectsFarFutureYear(t *testing.T) {
	f := newTitleFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateTitleDTO{Name: "Later", Year: intPtr(2041)})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "year")
	f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleService_CreateUnknownSlugs(t *testing.T) {
	f := newTitleFixture()
	f.categories.On("FindBySlug", mock.Anything, "nope").Return(nil, repository.ErrNotFound)
	f.genres.On("FindBySlugs", mock.Anything, []string{"drama", "ghost"}).
		Return([]models.Genre{{ID: 7, Slug: "drama"}}, nil)

	_, err := f.svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Dune",
		Category: strPtr("nope"),
		Genre:    []string{"drama", "ghost"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "genre")
	assert.Contains(t, verr.Fields["genre"][0], "ghost")
}

func TestTitleService_CreateDuplicateName(t *testing.T) {
	f := newTitleFixture()
	f.titles.On("Create", mock.Anything, mock.Anything, []models.Genre(nil)).
		Return(&repository.DuplicateError{Constraint: "idx_titles_name"})

	_, err := f.svc.Create(context.Background(), dto.CreateTitleDTO{Name: "Dune"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestTitleService_UpdatePartial(t *testing.T) {
	f := newTitleFixture()
	existing := &models.Title{ID: 5, Name: "Dune", Year: intPtr(1965)}

	f.titles.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	f.titles.On("Update", mock.Anything, existing, []string{"Name"}, []models.Genre(nil)).Return(nil)

	got, err := f.svc.Update(context.Background(), 5, dto.UpdateTitleDTO{Name: strPtr("Dune Messiah")})

	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Name)
	assert.Equal(t, 1965, *got.Year)
	f.titles.AssertExpectations(t)
}

func TestTitleService_UpdateClearsCategoryAndGenres(t *testing.T) {
	f := newTitleFixture()
	catID := int64(3)
	existing := &models.Title{ID: 5, Name: "Dune", CategoryID: &catID}

	f.titles.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	f.genres.On("FindBySlugs", mock.Anything, []string{}).Return([]models.Genre{}, nil)
	f.titles.On("Update", mock.Anything, existing, []string{"CategoryID"}, []models.Genre{}).Return(nil)

	_, err := f.svc.Update(context.Background(), 5, dto.UpdateTitleDTO{Category: strPtr(""), Genre: []string{}})

	require.NoError(t, err)
	assert.Nil(t, existing.CategoryID)
	f.titles.AssertExpectations(t)
}

func TestTitleService_UpdateRejectsYear(t *testing.T) {
	f := newTitleFixture()
	f.titles.On("GetByID", mock.Anything, int64(5)).Return(&models.Title{ID: 5, Name: "Dune"}, nil)

	_, err := f.svc.Update(context.Background(), 5, dto.UpdateTitleDTO{Year: intPtr(3000)})

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	f.titles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleService_GetAndDeleteMissing(t *testing.T) {
	f := newTitleFixture()
	f.titles.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
	f.titles.On("Delete", mock.Anything, int64(404)).Return(repository.ErrNotFound)

	_, err := f.svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 404), ErrNotFound)
}
