package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex:idx_categories_name;size:200;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex:idx_categories_slug;size:50;not null"`
}

func (Category) TableName() string {
	return "categories"
}
