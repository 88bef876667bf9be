package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrMissingApplicationRef = errors.New("notification has no application reference")
)

// NotificationFeedLimit caps a single feed read.
const NotificationFeedLimit = 50

type NotificationType string

const (
	// NotifApplication alerts a poster that a worker applied. Always
	// carries a non-null ApplicationID.
	NotifApplication NotificationType = "APPLICATION"
	// NotifResponse informs a party about an accept/reject decision.
	NotifResponse NotificationType = "RESPONSE"
)

type Notification struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	RecipientID   uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	SenderID      uuid.UUID        `json:"sender_id" db:"sender_id"`
	Type          NotificationType `json:"type" db:"type"`
	Title         string           `json:"title" db:"title"`
	Message       string           `json:"message" db:"message"`
	ApplicationID *uuid.UUID       `json:"application_id,omitempty" db:"application_id"`
	JobDetails    json.RawMessage  `json:"job_details,omitempty" db:"job_details"`
	WorkerDetails json.RawMessage  `json:"worker_details,omitempty" db:"worker_details"`
	IsRead        bool             `json:"is_read" db:"is_read"`
	ReadAt        *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`

	// Status is the effective status of the referenced application,
	// joined at read time rather than stored. Entries without an
	// application reference report PENDING. Not persisted.
	Status ApplicationStatus `json:"status" db:"-"`
}

// JobSnapshot is the job state embedded in a notification at send time.
type JobSnapshot struct {
	JobID        uuid.UUID  `json:"job_id"`
	Title        string     `json:"title"`
	Pay          string     `json:"pay"`
	City         string     `json:"city"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	PeopleNeeded int        `json:"people_needed"`
}

// WorkerSnapshot is the worker state embedded in a notification at
// send time.
type WorkerSnapshot struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  *string   `json:"phone,omitempty"`
	Avatar string    `json:"avatar"`
}

// DecodeJobSnapshot tolerantly decodes a stored job snapshot. Older
// writers stored the payload either as a JSON object or as a JSON
// string containing serialized JSON. Malformed or absent payloads
// yield nil, never an error.
func DecodeJobSnapshot(raw json.RawMessage) *JobSnapshot {
	var snap JobSnapshot
	if !decodeSnapshot(raw, &snap) {
		return nil
	}
	return &snap
}

// DecodeWorkerSnapshot mirrors DecodeJobSnapshot for worker payloads.
func DecodeWorkerSnapshot(raw json.RawMessage) *WorkerSnapshot {
	var snap WorkerSnapshot
	if !decodeSnapshot(raw, &snap) {
		return nil
	}
	return &snap
}

func decodeSnapshot(raw json.RawMessage, v any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	if json.Unmarshal(raw, v) == nil {
		return true
	}
	// Double-encoded: a JSON string holding the object.
	var inner string
	if json.Unmarshal(raw, &inner) != nil {
		return false
	}
	return json.Unmarshal([]byte(inner), v) == nil
}
