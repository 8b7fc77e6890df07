package service

import (
	"context"
	"errors"
	"net/http"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/permission"
)

const duplicateReviewMessage = "you have already reviewed this title"

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, author *models.User, titleID int64, req dto.CreateReviewDTO) (*models.Review, error)
	Update(ctx context.Context, actor *permission.Principal, titleID, reviewID int64, req dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, actor *permission.Principal, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	exists, err := s.titleRepo.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("title")
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("review")
	}
	return review, err
}

func (s *reviewService) Create(ctx context.Context, author *models.User, titleID int64, req dto.CreateReviewDTO) (*models.Review, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	validateNotBlank(v, "text", req.Text)
	validateScore(v, req.Score)
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(ctx, author.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewValidationError(NonFieldErrors, duplicateReviewMessage)
	}

	review := &models.Review{
		AuthorID: author.ID,
		TitleID:  titleID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// a concurrent request won the race to the unique index
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError(NonFieldErrors, duplicateReviewMessage)
		}
		return nil, err
	}
	review.Author = *author
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor *permission.Principal, titleID, reviewID int64, req dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := decisionError(permission.AuthoredObject(actor, http.MethodPatch, review.AuthorID)); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	if req.Text != nil {
		validateNotBlank(v, "text", *req.Text)
	}
	if req.Score != nil {
		validateScore(v, *req.Score)
	}
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	fields := req.ApplyTo(review)
	if err := s.reviewRepo.Update(ctx, review, fields...); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("review")
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *permission.Principal, titleID, reviewID int64) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := decisionError(permission.AuthoredObject(actor, http.MethodDelete, review.AuthorID)); err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("review")
		}
		return err
	}
	return nil
}
