package models

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"uniqueIndex:idx_titles_name;size:200;not null"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	Year        *int    `json:"year,omitempty" gorm:"index"`
	CategoryID  *int64  `json:"category_id,omitempty" gorm:"index"`

	// Rating is the average review score, filled only by queries that select it.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// association
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
