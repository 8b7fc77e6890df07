package dto

import "yamdb/internal/http-api/models"

// CreateUserDTO used for POST /api/v1/users
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required,max=30"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	FirstName string  `json:"first_name" binding:"max=150"`
	LastName  string  `json:"last_name" binding:"max=150"`
	Bio       string  `json:"bio" binding:"max=200"`
	Role      *string `json:"role,omitempty"`
}

// UpdateUserDTO used for PATCH /api/v1/users/:username and /users/me
type UpdateUserDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,max=30"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=200"`
	Role      *string `json:"role,omitempty"`
}

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// ApplyTo copies the provided profile fields onto u and returns the names of
// the fields it changed. Role is left to the caller.
func (d UpdateUserDTO) ApplyTo(u *models.User) []string {
	var fields []string
	if d.Username != nil {
		u.Username = *d.Username
		fields = append(fields, "Username")
	}
	if d.Email != nil {
		u.Email = *d.Email
		fields = append(fields, "Email")
	}
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
		fields = append(fields, "FirstName")
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
		fields = append(fields, "LastName")
	}
	if d.Bio != nil {
		u.Bio = *d.Bio
		fields = append(fields, "Bio")
	}
	return fields
}

func FromModelToUserResponse(u models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role.String(),
	}
}
