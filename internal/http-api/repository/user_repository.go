package repository

import (
	"context"
	"time"

	"yamdb/internal/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// Update writes only the named fields of user.
	Update(ctx context.Context, user *models.User, fields ...string) error
	// Activate marks the user active and stamps lastLogin=at, but only while the
	// row still holds wasActive and lastLogin. Returns ErrStale otherwise.
	Activate(ctx context.Context, id string, wasActive bool, lastLogin *time.Time, at time.Time) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translate("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) Update(ctx context.Context, user *models.User, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(user).Select(fields).Updates(user)
	if result.Error != nil {
		return translate("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Activate(ctx context.Context, id string, wasActive bool, lastLogin *time.Time, at time.Time) error {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ? AND is_active = ?", id, wasActive)
	if lastLogin == nil {
		q = q.Where("last_login IS NULL")
	} else {
		q = q.Where("last_login = ?", *lastLogin)
	}

	result := q.Updates(map[string]any{"is_active": true, "last_login": at})
	if result.Error != nil {
		return translate("activate user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	// return nil rather than a zero-value user on miss
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate("find user by id", err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate("find user by username", err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	filter := searchILike("username", search)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, translate("count users", err)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Scopes(filter).Order("username asc").Scopes(paginate(page, pageSize)).Find(&users).Error; err != nil {
		return nil, 0, translate("list users", err)
	}
	return users, total, nil
}
