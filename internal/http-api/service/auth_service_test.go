package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/permission"
	"yamdb/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-enough-length-123"

type authFixture struct {
	users  *MockUserRepository
	mail   *recordingMailer
	codes  *token.ConfirmationService
	access *token.JWTService
	svc    AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	codes, err := token.NewConfirmationService(testSecret, 72*time.Hour)
	require.NoError(t, err)
	access, err := token.NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	f := &authFixture{
		users:  new(MockUserRepository),
		mail:   &recordingMailer{},
		codes:  codes,
		access: access,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewAuthService(f.users, codes, access, f.mail, logger)
	return f
}

func codeFromMail(body string) string {
	return strings.TrimPrefix(body, "Your token: ")
}

func TestSignUp_NewEmailCreatesInactiveUser(t *testing.T) {
	f := newAuthFixture(t)

	f.users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, repository.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com" && u.Username == "new@example.com" && !u.IsActive && u.Role == permission.RoleUser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-1"
	}).Return(nil)

	err := f.svc.SignUp(context.Background(), "new@EXAMPLE.com")

	require.NoError(t, err)
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "new@example.com", f.mail.last().To)
	assert.Equal(t, "Your registration token", f.mail.last().Subject)

	code := codeFromMail(f.mail.last().Body)
	assert.NoError(t, f.codes.Verify(token.State{UserID: "user-1", Email: "new@example.com"}, code))
	f.users.AssertExpectations(t)
}

func TestSignUp_ExistingEmailIssuesFreshCode(t *testing.T) {
	f := newAuthFixture(t)
	user := &models.User{ID: "user-1", Email: "a@example.com", Username: "alice"}
	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(user, nil)

	require.NoError(t, f.svc.SignUp(context.Background(), "a@example.com"))
	require.NoError(t, f.svc.SignUp(context.Background(), "a@example.com"))

	require.Len(t, f.mail.sent, 2)
	first, second := codeFromMail(f.mail.sent[0].Body), codeFromMail(f.mail.sent[1].Body)
	assert.NotEqual(t, first, second)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_ConcurrentCreateFallsBackToExisting(t *testing.T) {
	f := newAuthFixture(t)
	existing := &models.User{ID: "user-1", Email: "a@example.com", Username: "a@example.com"}

	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, repository.ErrNotFound).Once()
	f.users.On("Create", mock.Anything, mock.Anything).
		Return(&repository.DuplicateError{Constraint: "idx_users_email"}).Once()
	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(existing, nil).Once()

	require.NoError(t, f.svc.SignUp(context.Background(), "a@example.com"))
	assert.Len(t, f.mail.sent, 1)
	f.users.AssertExpectations(t)
}

func TestSignUp_MailFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.mail.err = errors.New("smtp down")
	f.users.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&models.User{ID: "user-1", Email: "a@example.com"}, nil)

	err := f.svc.SignUp(context.Background(), "a@example.com")
	assert.ErrorContains(t, err, "smtp down")
}

func TestIssueToken_Success(t *testing.T) {
	f := newAuthFixture(t)
	user := &models.User{ID: "user-1", Email: "a@example.com", Username: "alice"}
	code, err := f.codes.Generate(stateOf(user))
	require.NoError(t, err)

	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(user, nil)
	f.users.On("Activate", mock.Anything, "user-1", false, (*time.Time)(nil), mock.AnythingOfType("time.Time")).Return(nil)

	access, err := f.svc.IssueToken(context.Background(), "a@example.com", code)

	require.NoError(t, err)
	claims, err := f.access.Parse(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, user.IsActive)
	assert.NotNil(t, user.LastLogin)
	f.users.AssertExpectations(t)
}

func TestIssueToken_CodeIsSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	user := &models.User{ID: "user-1", Email: "a@example.com", Username: "alice"}
	code, err := f.codes.Generate(stateOf(user))
	require.NoError(t, err)

	// the mock hands back the same pointer, so the activation sticks
	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(user, nil)
	f.users.On("Activate", mock.Anything, "user-1", false, (*time.Time)(nil), mock.Anything).Return(nil).Once()

	_, err = f.svc.IssueToken(context.Background(), "a@example.com", code)
	require.NoError(t, err)

	_, err = f.svc.IssueToken(context.Background(), "a@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	f.users.AssertNumberOfCalls(t, "Activate", 1)
}

func TestIssueToken_ConcurrentExchangeLoses(t *testing.T) {
	f := newAuthFixture(t)
	user := &models.User{ID: "user-1", Email: "a@example.com", Username: "alice"}
	code, err := f.codes.Generate(stateOf(user))
	require.NoError(t, err)

	// another request activated the account between our read and our write
	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(user, nil)
	f.users.On("Activate", mock.Anything, "user-1", false, (*time.Time)(nil), mock.Anything).Return(repository.ErrStale).Once()

	access, err := f.svc.IssueToken(context.Background(), "a@example.com", code)

	assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	assert.Empty(t, access)
	assert.False(t, user.IsActive)
	assert.Nil(t, user.LastLogin)
}

func TestIssueToken_ActivateFailure(t *testing.T) {
	f := newAuthFixture(t)
	user := &models.User{ID: "user-1", Email: "a@example.com", Username: "alice"}
	code, err := f.codes.Generate(stateOf(user))
	require.NoError(t, err)

	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(user, nil)
	f.users.On("Activate", mock.Anything, "user-1", false, (*time.Time)(nil), mock.Anything).Return(errors.New("connection reset")).Once()

	_, err = f.svc.IssueToken(context.Background(), "a@example.com", code)
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, ErrInvalidConfirmationCode)
}

func TestIssueToken_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, err := f.svc.IssueToken(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueToken_WrongCode(t *testing.T) {
	f := newAuthFixture(t)
	user := &models.User{ID: "user-1", Email: "a@example.com"}
	other := &models.User{ID: "user-2", Email: "b@example.com"}
	otherCode, err := f.codes.Generate(stateOf(other))
	require.NoError(t, err)

	f.users.On("FindByEmail", mock.Anything, "a@example.com").Return(user, nil)

	for _, code := range []string{"garbage", otherCode, ""} {
		_, err := f.svc.IssueToken(context.Background(), "a@example.com", code)
		assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	}
	assert.False(t, user.IsActive)
	f.users.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	active := &models.User{ID: "user-1", Username: "alice", IsActive: true}
	inactive := &models.User{ID: "user-2", Username: "bob"}

	f.users.On("FindByID", mock.Anything, "user-1").Return(active, nil)
	f.users.On("FindByID", mock.Anything, "user-2").Return(inactive, nil)
	f.users.On("FindByID", mock.Anything, "user-3").Return(nil, repository.ErrNotFound)

	tok, err := f.access.Issue("user-1", "alice")
	require.NoError(t, err)
	got, err := f.svc.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, active, got)

	tok, err = f.access.Issue("user-2", "bob")
	require.NoError(t, err)
	_, err = f.svc.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	tok, err = f.access.Issue("user-3", "deleted")
	require.NoError(t, err)
	_, err = f.svc.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
