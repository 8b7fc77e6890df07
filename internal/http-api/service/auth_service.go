package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/mailer"
	"yamdb/internal/permission"
	"yamdb/internal/token"
)

const confirmationSubject = "Your registration token"

type AuthService interface {
	// SignUp makes sure an account exists for email and mails it a fresh
	// confirmation code.
	SignUp(ctx context.Context, email string) error
	// IssueToken exchanges a valid confirmation code for an access token and
	// activates the account.
	IssueToken(ctx context.Context, email, code string) (string, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	confirmations token.ConfirmationTokens
	accessTokens  token.AccessTokens
	mailer        mailer.Mailer
	logger        *slog.Logger
	now           func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	confirmations token.ConfirmationTokens,
	accessTokens token.AccessTokens,
	mail mailer.Mailer,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		confirmations: confirmations,
		accessTokens:  accessTokens,
		mailer:        mail,
		logger:        logger,
		now:           time.Now,
	}
}

func stateOf(u *models.User) token.State {
	return token.State{
		UserID:    u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
	}
}

func (s *authService) SignUp(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.findOrCreateInactive(ctx, email)
	if err != nil {
		return err
	}
	if user.IsActive {
		// re-registration of an active account just issues another code
		s.logger.InfoContext(ctx, "confirmation requested for active account", "user_id", user.ID)
	}

	code, err := s.confirmations.Generate(stateOf(user))
	if err != nil {
		return fmt.Errorf("generate confirmation code: %w", err)
	}

	msg := mailer.Message{
		To:      user.Email,
		Subject: confirmationSubject,
		Body:    fmt.Sprintf("Your token: %s", code),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation code: %w", err)
	}
	return nil
}

func (s *authService) findOrCreateInactive(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		Username: email,
		Email:    email,
		Role:     permission.RoleUser,
		IsActive: false,
	}
	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent sign-up for the same address
		return s.userRepo.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "created inactive account", "user_id", user.ID)
	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", notFound("user")
	}
	if err != nil {
		return "", err
	}

	if err := s.confirmations.Verify(stateOf(user), code); err != nil {
		s.logger.InfoContext(ctx, "confirmation code rejected", "user_id", user.ID, "error", err)
		return "", ErrInvalidConfirmationCode
	}

	// changing the state the code was bound to retires every outstanding code;
	// the write is conditional so two exchanges of one code cannot both land
	now := s.now().UTC().Truncate(time.Microsecond)
	err = s.userRepo.Activate(ctx, user.ID, user.IsActive, user.LastLogin, now)
	if errors.Is(err, repository.ErrStale) {
		s.logger.InfoContext(ctx, "confirmation code already used", "user_id", user.ID)
		return "", ErrInvalidConfirmationCode
	}
	if err != nil {
		return "", fmt.Errorf("activate user: %w", err)
	}
	user.IsActive = true
	user.LastLogin = &now

	accessToken, err := s.accessTokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", err
	}
	return accessToken, nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.accessTokens.Parse(accessToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
