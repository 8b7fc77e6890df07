package service

import (
	"context"
	"errors"
	"strings"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/permission"
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	// Update applies an admin edit, role included.
	Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, username string) error
	// UpdateSelf applies a profile edit by the user themselves; role is ignored.
	UpdateSelf(ctx context.Context, user *models.User, req dto.UpdateUserDTO) (*models.User, error)
	// SetRole changes a role outside the HTTP API (admin CLI).
	SetRole(ctx context.Context, username string, role permission.Role) (*models.User, error)
	// EnsureAdmin creates or promotes an active admin account.
	EnsureAdmin(ctx context.Context, username, email string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, strings.TrimSpace(search), page, pageSize)
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error) {
	v := &ValidationError{}
	validateUsername(v, req.Username)

	role := permission.RoleUser
	if req.Role != nil {
		parsed, err := permission.ParseRole(*req.Role)
		if err != nil {
			v.Add("role", err.Error())
		}
		role = parsed
	}
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     normalizeEmail(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, userConflict(err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("user")
	}
	return user, err
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, req, true)
}

func (s *userService) UpdateSelf(ctx context.Context, user *models.User, req dto.UpdateUserDTO) (*models.User, error) {
	return s.apply(ctx, user, req, false)
}

func (s *userService) apply(ctx context.Context, user *models.User, req dto.UpdateUserDTO, allowRole bool) (*models.User, error) {
	v := &ValidationError{}
	if req.Username != nil {
		validateUsername(v, *req.Username)
	}
	if req.Email != nil {
		normalized := normalizeEmail(*req.Email)
		req.Email = &normalized
	}

	var role permission.Role
	if allowRole && req.Role != nil {
		parsed, err := permission.ParseRole(*req.Role)
		if err != nil {
			v.Add("role", err.Error())
		}
		role = parsed
	}
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	fields := req.ApplyTo(user)
	if role != "" {
		user.Role = role
		fields = append(fields, "Role")
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, user, fields...); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user")
		}
		return nil, userConflict(err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("user")
		}
		return err
	}
	return nil
}

func (s *userService) SetRole(ctx context.Context, username string, role permission.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, NewValidationError("role", "unknown role "+role.String())
	}
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user, "Role"); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, email string) (*models.User, error) {
	email = normalizeEmail(email)
	v := &ValidationError{}
	validateUsername(v, username)
	validateNotBlank(v, "email", email)
	if err := v.errOrNil(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     permission.RoleAdmin,
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, userConflict(err)
		}
		return user, nil
	case err != nil:
		return nil, err
	}

	user.Role = permission.RoleAdmin
	user.IsActive = true
	if err := s.userRepo.Update(ctx, user, "Role", "IsActive"); err != nil {
		return nil, err
	}
	return user, nil
}

// userConflict turns a unique violation into a field error.
func userConflict(err error) error {
	var dup *repository.DuplicateError
	if !errors.As(err, &dup) {
		return err
	}
	switch {
	case strings.Contains(dup.Constraint, "email"):
		return NewValidationError("email", "a user with this email already exists")
	case strings.Contains(dup.Constraint, "username"):
		return NewValidationError("username", "a user with this username already exists")
	default:
		return NewValidationError(NonFieldErrors, "user already exists")
	}
}
