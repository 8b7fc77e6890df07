package models

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex:idx_genres_name;size:200;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex:idx_genres_slug;size:50;not null"`
}

func (Genre) TableName() string {
	return "genres"
}
