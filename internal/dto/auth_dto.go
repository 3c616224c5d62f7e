package dto

import (
	"time"

	"hubtrack/internal/entity"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name,omitempty"`
	Role      string         `json:"role"`
	IsActive  bool           `json:"is_active"`
	Metadata  map[string]any `json:"user_metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      name,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		Metadata:  user.Metadata,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
