package audit

import (
	"context"

	"github.com/google/uuid"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/repository"
)

type Service interface {
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
	GetEntityHistory(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	params := domain.PaginationParams{
		Page:     1,
		PageSize: limit,
	}

	logs, _, err := s.auditRepo.List(ctx, params)
	return logs, err
}

func (s *service) GetEntityHistory(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	logs, total, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
