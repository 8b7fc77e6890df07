package models

import (
	"time"

	"yamdb/internal/permission"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string          `gorm:"uniqueIndex:idx_users_username;size:254;not null" json:"username"`
	Email     string          `gorm:"uniqueIndex:idx_users_email,expression:lower(email);size:254;not null" json:"email"` // unique regardless of case
	FirstName string          `gorm:"size:150" json:"first_name"`
	LastName  string          `gorm:"size:150" json:"last_name"`
	Bio       string          `gorm:"size:200" json:"bio"`
	Role      permission.Role `gorm:"type:varchar(20);default:'user';not null" json:"role"`
	IsActive  bool            `gorm:"not null" json:"is_active"` // false until the emailed code is confirmed
	LastLogin *time.Time      `json:"last_login,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = permission.RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

func (user *User) Principal() *permission.Principal {
	return &permission.Principal{UserID: user.ID, Role: user.Role}
}
