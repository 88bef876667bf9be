package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyApplied      = errors.New("worker has already applied to this job")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyDecided      = errors.New("application has already been decided")
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transition.
// PENDING may move to ACCEPTED or REJECTED once; never back.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// JobApplication carries denormalized snapshots of the worker and job
// captured at apply time. Snapshots are never synced afterwards; only
// the status field changes.
type JobApplication struct {
	ID       uuid.UUID `json:"id" db:"id"`
	JobID    uuid.UUID `json:"job_id" db:"job_id"`
	WorkerID uuid.UUID `json:"worker_id" db:"worker_id"`
	PosterID uuid.UUID `json:"poster_id" db:"poster_id"`

	WorkerName   string  `json:"worker_name" db:"worker_name"`
	WorkerEmail  string  `json:"worker_email" db:"worker_email"`
	WorkerPhone  *string `json:"worker_phone,omitempty" db:"worker_phone"`
	WorkerAvatar string  `json:"worker_avatar" db:"worker_avatar"`

	JobTitle     string     `json:"job_title" db:"job_title"`
	JobPay       string     `json:"job_pay" db:"job_pay"`
	JobCity      string     `json:"job_city" db:"job_city"`
	JobStartDate *time.Time `json:"job_start_date,omitempty" db:"job_start_date"`

	Status    ApplicationStatus `json:"status" db:"status"`
	AppliedAt time.Time         `json:"applied_at" db:"applied_at"`
}
