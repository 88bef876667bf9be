package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pasar-kerja/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, application_id, job_details, worker_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientID, notif.SenderID, notif.Type,
		notif.Title, notif.Message, notif.ApplicationID,
		notif.JobDetails, notif.WorkerDetails,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

// ListByRecipient returns the feed newest first. The overall feed is
// capped at NotificationFeedLimit regardless of paging window.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	var total int64
	var notifications []domain.Notification

	if unreadOnly {
		countQuery := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
		if err := r.db.GetContext(ctx, &total, countQuery, recipientID); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM notifications
			WHERE recipient_id = $1 AND is_read = false
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &notifications, query, recipientID, params.PageSize, params.Offset())
		return notifications, total, err
	}

	countQuery := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, recipientID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &notifications, query, recipientID, params.PageSize, params.Offset())
	return notifications, total, err
}

// MarkAsRead only touches the recipient's own row; a foreign ID is a
// silent no-op rather than an error.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE id = $1 AND recipient_id = $2 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, id, recipientID)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE recipient_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, recipientID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}
