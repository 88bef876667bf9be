package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pasar-kerja/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*domain.JobApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error
	ListByWorker(ctx context.Context, workerID uuid.UUID, params domain.PaginationParams) ([]domain.JobApplication, int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, params domain.PaginationParams) ([]domain.JobApplication, int64, error)
	ListMissingNotification(ctx context.Context, limit int) ([]domain.JobApplication, error)
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const pqUniqueViolation = "23505"

func (r *applicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `
		INSERT INTO applications (id, job_id, worker_id, poster_id,
			worker_name, worker_email, worker_phone, worker_avatar,
			job_title, job_pay, job_city, job_start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING applied_at`

	err := r.db.QueryRowxContext(ctx, query,
		app.ID, app.JobID, app.WorkerID, app.PosterID,
		app.WorkerName, app.WorkerEmail, app.WorkerPhone, app.WorkerAvatar,
		app.JobTitle, app.JobPay, app.JobCity, app.JobStartDate, app.Status,
	).Scan(&app.AppliedAt)

	// The (job_id, worker_id) unique index is the authority on
	// duplicates; the service-level pre-check is advisory only.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return domain.ErrAlreadyApplied
	}
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	var app domain.JobApplication
	query := `SELECT * FROM applications WHERE id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*domain.JobApplication, error) {
	var app domain.JobApplication
	query := `SELECT * FROM applications WHERE job_id = $1 AND worker_id = $2`

	err := r.db.GetContext(ctx, &app, query, jobID, workerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus is a compare-and-set: it only moves PENDING rows, so a
// second decision against an already-terminal application fails with
// ErrAlreadyDecided instead of silently overwriting.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	query := `UPDATE applications SET status = $2 WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrApplicationNotFound
		}
		return domain.ErrAlreadyDecided
	}
	return nil
}

func (r *applicationRepository) ListByWorker(ctx context.Context, workerID uuid.UUID, params domain.PaginationParams) ([]domain.JobApplication, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications WHERE worker_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, workerID); err != nil {
		return nil, 0, err
	}

	var apps []domain.JobApplication
	query := `
		SELECT * FROM applications
		WHERE worker_id = $1
		ORDER BY applied_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &apps, query, workerID, params.PageSize, params.Offset())
	return apps, total, err
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, params domain.PaginationParams) ([]domain.JobApplication, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications WHERE job_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, jobID); err != nil {
		return nil, 0, err
	}

	var apps []domain.JobApplication
	query := `
		SELECT * FROM applications
		WHERE job_id = $1
		ORDER BY applied_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &apps, query, jobID, params.PageSize, params.Offset())
	return apps, total, err
}

// ListMissingNotification returns applications whose APPLICATION
// notification was never written (the second write of the apply
// workflow failed). The reconciliation sweep re-creates them.
func (r *applicationRepository) ListMissingNotification(ctx context.Context, limit int) ([]domain.JobApplication, error) {
	var apps []domain.JobApplication
	query := `
		SELECT a.* FROM applications a
		LEFT JOIN notifications n ON n.application_id = a.id AND n.type = 'APPLICATION'
		WHERE n.id IS NULL
		ORDER BY a.applied_at ASC
		LIMIT $1`
	err := r.db.SelectContext(ctx, &apps, query, limit)
	return apps, err
}
