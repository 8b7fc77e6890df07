package service

import (
	"context"
	"errors"
	"strings"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error) {
	if err := validateNameAndSlug(req.Name, req.Slug); err != nil {
		return nil, err
	}
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, nameOrSlugConflict(err, "category")
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("category")
		}
		return err
	}
	return nil
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), page, pageSize)
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error) {
	if err := validateNameAndSlug(req.Name, req.Slug); err != nil {
		return nil, err
	}
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, nameOrSlugConflict(err, "genre")
	}
	return genre, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("genre")
		}
		return err
	}
	return nil
}

func validateNameAndSlug(name, slug string) error {
	v := &ValidationError{}
	validateNotBlank(v, "name", name)
	validateSlug(v, slug)
	return v.errOrNil()
}

func nameOrSlugConflict(err error, what string) error {
	var dup *repository.DuplicateError
	if !errors.As(err, &dup) {
		return err
	}
	if strings.HasSuffix(dup.Constraint, "_name") {
		return NewValidationError("name", "a "+what+" with this name already exists")
	}
	return NewValidationError("slug", "a "+what+" with this slug already exists")
}
