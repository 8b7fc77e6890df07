package repository

import (
	"context"
	"fmt"

	"yamdb/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TitleFilter narrows a title listing. Zero values are ignored.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	// Create inserts title and links genres in one transaction.
	Create(ctx context.Context, title *models.Title, genres []models.Genre) error
	// Update writes the named fields; a non-nil genres replaces the genre set.
	Update(ctx context.Context, title *models.Title, fields []string, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	// GetByID loads a title with category, genres and rating.
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(title).Error; err != nil {
			return translate("create title", err)
		}
		if len(genres) > 0 {
			if err := tx.Model(title).Association("Genres").Replace(genres); err != nil {
				return fmt.Errorf("link genres: %w", err)
			}
		}
		return nil
	})
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title, fields []string, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			result := tx.Model(title).Select(fields).Omit(clause.Associations).Updates(title)
			if result.Error != nil {
				return translate("update title", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		if genres != nil {
			if err := tx.Model(title).Association("Genres").Replace(genres); err != nil {
				return fmt.Errorf("replace genres: %w", err)
			}
		}
		return nil
	})
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("detach genres: %w", err)
		}
		result := tx.Delete(&models.Title{}, id)
		if result.Error != nil {
			return translate("delete title", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.detailed(r.db.WithContext(ctx)).
		Where("titles.id = ?", id).
		First(&title).Error
	if err != nil {
		return nil, translate("get title", err)
	}
	return &title, nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate("check title", err)
	}
	return count > 0, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	scope := r.filtered(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, translate("count titles", err)
	}

	var list []models.Title
	if err := r.detailed(r.db.WithContext(ctx)).
		Scopes(scope).
		Order("titles.name asc").
		Scopes(paginate(page, pageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, translate("list titles", err)
	}
	return list, total, nil
}

// detailed selects the average review score alongside each title and
// preloads its category and genres.
func (r *titleRepository) detailed(db *gorm.DB) *gorm.DB {
	rating := r.db.Model(&models.Review{}).
		Select("AVG(reviews.score)").
		Where("reviews.title_id = titles.id")

	return db.Model(&models.Title{}).
		Select("titles.*, (?) AS rating", rating).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name asc")
		})
}

func (r *titleRepository) filtered(f TitleFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.CategorySlug != "" {
			db = db.Where("titles.category_id IN (?)",
				r.db.Model(&models.Category{}).Select("id").Where("slug = ?", f.CategorySlug))
		}
		if f.GenreSlug != "" {
			db = db.Where("titles.id IN (?)",
				r.db.Table("title_genres").
					Select("title_genres.title_id").
					Joins("JOIN genres ON genres.id = title_genres.genre_id").
					Where("genres.slug = ?", f.GenreSlug))
		}
		if f.Name != "" {
			db = db.Where("titles.name ILIKE ?", "%"+f.Name+"%")
		}
		if f.Year != nil {
			db = db.Where("titles.year = ?", *f.Year)
		}
		return db
	}
}
