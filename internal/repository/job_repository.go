package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pasar-kerja/internal/domain"
)

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, openOnly bool, params domain.PaginationParams) ([]domain.Job, int64, error)
	ListByPoster(ctx context.Context, posterID uuid.UUID, params domain.PaginationParams) ([]domain.Job, int64, error)
	ListOpen(ctx context.Context, limit int) ([]domain.Job, error)
}

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, poster_id, title, description, pay, city, start_date, people_needed, is_open)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		job.ID, job.PosterID, job.Title, job.Description, job.Pay,
		job.City, job.StartDate, job.PeopleNeeded, job.IsOpen,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	query := `SELECT * FROM jobs WHERE id = $1`

	err := r.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, pay = $4, city = $5,
		    start_date = $6, people_needed = $7, is_open = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		job.ID, job.Title, job.Description, job.Pay, job.City,
		job.StartDate, job.PeopleNeeded, job.IsOpen,
	).Scan(&job.UpdatedAt)
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM jobs WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *jobRepository) List(ctx context.Context, openOnly bool, params domain.PaginationParams) ([]domain.Job, int64, error) {
	params.Validate()

	var total int64
	var jobs []domain.Job

	if openOnly {
		countQuery := `SELECT COUNT(*) FROM jobs WHERE is_open = true`
		if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM jobs
			WHERE is_open = true
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		err := r.db.SelectContext(ctx, &jobs, query, params.PageSize, params.Offset())
		return jobs, total, err
	}

	countQuery := `SELECT COUNT(*) FROM jobs`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &jobs, query, params.PageSize, params.Offset())
	return jobs, total, err
}

func (r *jobRepository) ListByPoster(ctx context.Context, posterID uuid.UUID, params domain.PaginationParams) ([]domain.Job, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs WHERE poster_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, posterID); err != nil {
		return nil, 0, err
	}

	var jobs []domain.Job
	query := `
		SELECT * FROM jobs
		WHERE poster_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &jobs, query, posterID, params.PageSize, params.Offset())
	return jobs, total, err
}

func (r *jobRepository) ListOpen(ctx context.Context, limit int) ([]domain.Job, error) {
	var jobs []domain.Job
	query := `
		SELECT * FROM jobs
		WHERE is_open = true
		ORDER BY created_at DESC
		LIMIT $1`
	err := r.db.SelectContext(ctx, &jobs, query, limit)
	return jobs, err
}
