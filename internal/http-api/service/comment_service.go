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

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, author *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*models.Comment, error)
	Update(ctx context.Context, actor *permission.Principal, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, actor *permission.Principal, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// requireReview checks the review exists under the given title.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	_, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("review")
	}
	return err
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("comment")
	}
	return comment, err
}

func (s *commentService) Create(ctx context.Context, author *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*models.Comment, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	validateNotBlank(v, "text", req.Text)
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID: author.ID,
		ReviewID: reviewID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *author
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor *permission.Principal, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := decisionError(permission.AuthoredObject(actor, http.MethodPatch, comment.AuthorID)); err != nil {
		return nil, err
	}
	if req.Text == nil {
		return comment, nil
	}

	v := &ValidationError{}
	validateNotBlank(v, "text", *req.Text)
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	comment.Text = *req.Text
	if err := s.commentRepo.Update(ctx, comment, "Text"); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("comment")
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *permission.Principal, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := decisionError(permission.AuthoredObject(actor, http.MethodDelete, comment.AuthorID)); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("comment")
		}
		return err
	}
	return nil
}
