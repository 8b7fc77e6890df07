package service

import (
	"context"
	"testing"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice = &models.User{ID: "user-1", Username: "alice", Role: permission.RoleUser, IsActive: true}
	bob   = &models.User{ID: "user-2", Username: "bob", Role: permission.RoleUser, IsActive: true}
	mod   = &models.User{ID: "user-3", Username: "mod", Role: permission.RoleModerator, IsActive: true}
)

func newReviewFixture() (*MockReviewRepository, *MockTitleRepository, ReviewService) {
	reviews := new(MockReviewRepository)
	titles := new(MockTitleRepository)
	return reviews, titles, NewReviewService(reviews, titles)
}

func TestReviewService_Create(t *testing.T) {
	reviews, titles, svc := newReviewFixture()
	titles.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	reviews.On("ExistsByAuthorAndTitle", mock.Anything, "user-1", int64(1)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.AuthorID == "user-1" && r.TitleID == 1 && r.Score == 8
	})).Return(nil)

	got, err := svc.Create(context.Background(), alice, 1, dto.CreateReviewDTO{Text: "good", Score: 8})

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Author.Username)
	reviews.AssertExpectations(t)
}

func TestReviewService_CreateSecondReviewRejected(t *testing.T) {
	reviews, titles, svc := newReviewFixture()
	titles.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	reviews.On("ExistsByAuthorAndTitle", mock.Anything, "user-1", int64(1)).Return(true, nil)

	_, err := svc.Create(context.Background(), alice, 1, dto.CreateReviewDTO{Text: "again", Score: 3})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, NonFieldErrors)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_CreateRaceTranslatedToValidation(t *testing.T) {
	reviews, titles, svc := newReviewFixture()
	titles.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	reviews.On("ExistsByAuthorAndTitle", mock.Anything, "user-1", int64(1)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.Anything).
		Return(&repository.DuplicateError{Constraint: "idx_reviews_author_title"})

	_, err := svc.Create(context.Background(), alice, 1, dto.CreateReviewDTO{Text: "race", Score: 5})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{duplicateReviewMessage}, verr.Fields[NonFieldErrors])
}

func TestReviewService_CreateValidation(t *testing.T) {
	reviews, titles, svc := newReviewFixture()
	titles.On("Exists", mock.Anything, int64(1)).Return(true, nil)

	for _, score := range []int{0, 11} {
		_, err := svc.Create(context.Background(), alice, 1, dto.CreateReviewDTO{Text: "x", Score: score})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "score")
	}
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_UnknownTitle(t *testing.T) {
	_, titles, svc := newReviewFixture()
	titles.On("Exists", mock.Anything, int64(9)).Return(false, nil)

	_, err := svc.Create(context.Background(), alice, 9, dto.CreateReviewDTO{Text: "x", Score: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.List(context.Background(), 9, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewService_UpdatePermissions(t *testing.T) {
	score := 2
	tests := []struct {
		name    string
		actor   *permission.Principal
		wantErr error
	}{
		{"author", alice.Principal(), nil},
		{"moderator", mod.Principal(), nil},
		{"stranger", bob.Principal(), ErrForbidden},
		{"anonymous", nil, ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews, _, svc := newReviewFixture()
			review := &models.Review{ID: 4, AuthorID: "user-1", TitleID: 1, Text: "ok", Score: 6, Author: *alice}
			reviews.On("GetByID", mock.Anything, int64(1), int64(4)).Return(review, nil)
			reviews.On("Update", mock.Anything, review, []string{"Score"}).Return(nil)

			got, err := svc.Update(context.Background(), tt.actor, 1, 4, dto.UpdateReviewDTO{Score: &score})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, got.Score)
			assert.Equal(t, "user-1", got.AuthorID)
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	reviews, _, svc := newReviewFixture()
	review := &models.Review{ID: 4, AuthorID: "user-1", TitleID: 1}
	reviews.On("GetByID", mock.Anything, int64(1), int64(4)).Return(review, nil)
	reviews.On("Delete", mock.Anything, int64(4)).Return(nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), bob.Principal(), 1, 4), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), alice.Principal(), 1, 4))
	reviews.AssertNumberOfCalls(t, "Delete", 1)
}

func TestReviewService_GetWrongTitle(t *testing.T) {
	reviews, _, svc := newReviewFixture()
	reviews.On("GetByID", mock.Anything, int64(2), int64(4)).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(context.Background(), 2, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}
