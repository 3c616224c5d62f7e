package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string   `gorm:"type:text"`
	Name         *string   `gorm:"type:varchar(255)"`
	Role         UserRole  `gorm:"type:user_role;default:'user';not null"`

	IsActive bool `gorm:"default:true"`

	Metadata datatypes.JSONMap `gorm:"column:user_metadata"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
