package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

// UnknownDistance is assigned to jobs whose city cannot be resolved to
// coordinates, so they sort after every real distance.
const UnknownDistance = 999999

type Job struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	PosterID     uuid.UUID  `json:"poster_id" db:"poster_id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Pay          string     `json:"pay" db:"pay"`
	City         string     `json:"city" db:"city"`
	StartDate    *time.Time `json:"start_date,omitempty" db:"start_date"`
	PeopleNeeded int        `json:"people_needed" db:"people_needed"`
	IsOpen       bool       `json:"is_open" db:"is_open"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	// Distance in kilometers from the requesting user, filled in by the
	// geo service on location-aware listings. Not persisted.
	Distance *float64 `json:"distance,omitempty" db:"-"`
}

type CreateJobInput struct {
	Title        string     `json:"title" validate:"required,min=3"`
	Description  string     `json:"description"`
	Pay          string     `json:"pay" validate:"required"`
	City         string     `json:"city" validate:"required"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	PeopleNeeded int        `json:"people_needed" validate:"omitempty,min=1"`
}

type UpdateJobInput struct {
	Title        *string     `json:"title,omitempty" validate:"omitempty,min=3"`
	Description  *string     `json:"description,omitempty"`
	Pay          *string     `json:"pay,omitempty"`
	City         *string     `json:"city,omitempty"`
	StartDate    **time.Time `json:"start_date,omitempty"`
	PeopleNeeded *int        `json:"people_needed,omitempty" validate:"omitempty,min=1"`
	IsOpen       *bool       `json:"is_open,omitempty"`
}
