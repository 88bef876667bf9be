package mocks

import (
	"context"
	"pasar-kerja/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type JobRepository struct {
	mock.Mock
}

func (m *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *JobRepository) List(ctx context.Context, openOnly bool, params domain.PaginationParams) ([]domain.Job, int64, error) {
	args := m.Called(ctx, openOnly, params)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *JobRepository) ListByPoster(ctx context.Context, posterID uuid.UUID, params domain.PaginationParams) ([]domain.Job, int64, error) {
	args := m.Called(ctx, posterID, params)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *JobRepository) ListOpen(ctx context.Context, limit int) ([]domain.Job, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Job), args.Error(1)
}
