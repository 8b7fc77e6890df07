package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	years        YearValidator
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	years YearValidator,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		years:        years,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("title")
	}
	return title, err
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*models.Title, error) {
	v := &ValidationError{}
	validateNotBlank(v, "name", req.Name)
	if req.Year != nil {
		s.checkYear(v, *req.Year)
	}

	title := req.ToModel()
	if req.Category != nil && *req.Category != "" {
		category, err := s.resolveCategory(ctx, v, *req.Category)
		if err != nil {
			return nil, err
		}
		if category != nil {
			title.CategoryID = &category.ID
		}
	}
	genres, err := s.resolveGenres(ctx, v, req.Genre)
	if err != nil {
		return nil, err
	}
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, &title, genres); err != nil {
		return nil, titleConflict(err)
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	v := &ValidationError{}
	if req.Name != nil {
		validateNotBlank(v, "name", *req.Name)
	}
	if req.Year != nil {
		s.checkYear(v, *req.Year)
	}

	fields := req.ApplyTo(title)
	if req.Category != nil {
		title.CategoryID = nil
		if *req.Category != "" {
			category, err := s.resolveCategory(ctx, v, *req.Category)
			if err != nil {
				return nil, err
			}
			if category != nil {
				title.CategoryID = &category.ID
			}
		}
		fields = append(fields, "CategoryID")
	}
	genres, err := s.resolveGenres(ctx, v, req.Genre)
	if err != nil {
		return nil, err
	}
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	if err := s.titleRepo.Update(ctx, title, fields, genres); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("title")
		}
		return nil, titleConflict(err)
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("title")
		}
		return err
	}
	return nil
}

func (s *titleService) checkYear(v *ValidationError, year int) {
	var verr *ValidationError
	if errors.As(s.years.Validate(year), &verr) {
		for _, msg := range verr.Fields["year"] {
			v.Add("year", msg)
		}
	}
}

// resolveCategory looks up a category by slug, recording a field error when
// it does not exist.
func (s *titleService) resolveCategory(ctx context.Context, v *ValidationError, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		v.Add("category", fmt.Sprintf("category %q does not exist", slug))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// resolveGenres maps slugs to genres. A nil slice stays nil so updates can
// leave genres untouched.
func (s *titleService) resolveGenres(ctx context.Context, v *ValidationError, slugs []string) ([]models.Genre, error) {
	if slugs == nil {
		return nil, nil
	}
	slugs = dedupe(slugs)
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		var missing []string
		for _, slug := range slugs {
			if !found[slug] {
				missing = append(missing, slug)
			}
		}
		v.Add("genre", fmt.Sprintf("unknown genre: %s", strings.Join(missing, ", ")))
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	return genres, nil
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func titleConflict(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return NewValidationError("name", "a title with this name already exists")
	}
	return err
}
