package mocks

import (
	"context"
	"pasar-kerja/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *ApplicationRepository) GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*domain.JobApplication, error) {
	args := m.Called(ctx, jobID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ApplicationRepository) ListByWorker(ctx context.Context, workerID uuid.UUID, params domain.PaginationParams) ([]domain.JobApplication, int64, error) {
	args := m.Called(ctx, workerID, params)
	return args.Get(0).([]domain.JobApplication), args.Get(1).(int64), args.Error(2)
}

func (m *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, params domain.PaginationParams) ([]domain.JobApplication, int64, error) {
	args := m.Called(ctx, jobID, params)
	return args.Get(0).([]domain.JobApplication), args.Get(1).(int64), args.Error(2)
}

func (m *ApplicationRepository) ListMissingNotification(ctx context.Context, limit int) ([]domain.JobApplication, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}
