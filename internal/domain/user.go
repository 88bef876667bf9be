package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio          *string    `json:"bio,omitempty" db:"bio"`
	City         *string    `json:"city,omitempty" db:"city"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=worker poster"`
}

type UpdateUserInput struct {
	FullName  *string  `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Phone     **string `json:"phone,omitempty"`
	AvatarURL **string `json:"avatar_url,omitempty"`
	Bio       **string `json:"bio,omitempty"`
	City      **string `json:"city,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleWorker UserRole = "worker"
	RolePoster UserRole = "poster"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleWorker, RolePoster:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user may act in the given role. Posters
// can also apply to jobs, so "poster" implies "worker".
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "poster":
		return u.Role == "poster"
	case "worker":
		return u.Role == "worker" || u.Role == "poster"
	default:
		return false
	}
}

// DefaultAvatarURL is the placeholder stored on application snapshots
// when the worker has no avatar on file.
const DefaultAvatarURL = "https://ui-avatars.com/api/?background=random"
