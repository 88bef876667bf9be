package job

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/repository"
	"pasar-kerja/internal/service/geo"
)

var ErrNotJobOwner = errors.New("job belongs to another poster")

const (
	openJobsCacheKey = "jobs:open"
	openJobsCacheTTL = 2 * time.Minute

	// nearbyScanLimit bounds how many open jobs a location-aware
	// listing considers before sorting.
	nearbyScanLimit = 200
)

type Service interface {
	Create(ctx context.Context, posterID uuid.UUID, input domain.CreateJobInput) (*domain.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, id, posterID uuid.UUID, input domain.UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, id, posterID uuid.UUID) error
	List(ctx context.Context, openOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Job], error)
	ListByPoster(ctx context.Context, posterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Job], error)
	Nearby(ctx context.Context, location string, radiusKm float64) ([]domain.Job, error)
}

type service struct {
	jobRepo   repository.JobRepository
	auditRepo repository.AuditLogRepository
	redis     *redis.Client
	resolver  *geo.Resolver
}

func NewService(jobRepo repository.JobRepository, auditRepo repository.AuditLogRepository, redisClient *redis.Client, resolver *geo.Resolver) Service {
	return &service{
		jobRepo:   jobRepo,
		auditRepo: auditRepo,
		redis:     redisClient,
		resolver:  resolver,
	}
}

func (s *service) Create(ctx context.Context, posterID uuid.UUID, input domain.CreateJobInput) (*domain.Job, error) {
	peopleNeeded := input.PeopleNeeded
	if peopleNeeded < 1 {
		peopleNeeded = 1
	}

	job := &domain.Job{
		ID:           uuid.New(),
		PosterID:     posterID,
		Title:        input.Title,
		Description:  input.Description,
		Pay:          input.Pay,
		City:         input.City,
		StartDate:    input.StartDate,
		PeopleNeeded: peopleNeeded,
		IsOpen:       true,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     posterID,
		Action:     "CREATE",
		EntityType: "JOB",
		EntityID:   job.ID,
		NewValue:   job,
	})

	s.invalidateCache(ctx)

	return job, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

func (s *service) Update(ctx context.Context, id, posterID uuid.UUID, input domain.UpdateJobInput) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrJobNotFound
	}
	if job.PosterID != posterID {
		return nil, ErrNotJobOwner
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Pay != nil {
		job.Pay = *input.Pay
	}
	if input.City != nil {
		job.City = *input.City
	}
	if input.StartDate != nil {
		job.StartDate = *input.StartDate
	}
	if input.PeopleNeeded != nil {
		job.PeopleNeeded = *input.PeopleNeeded
	}
	if input.IsOpen != nil {
		job.IsOpen = *input.IsOpen
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     posterID,
		Action:     "UPDATE",
		EntityType: "JOB",
		EntityID:   job.ID,
		NewValue:   job,
	})

	s.invalidateCache(ctx)

	return job, nil
}

func (s *service) Delete(ctx context.Context, id, posterID uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.ErrJobNotFound
	}
	if job.PosterID != posterID {
		return ErrNotJobOwner
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     posterID,
		Action:     "DELETE",
		EntityType: "JOB",
		EntityID:   id,
	})

	s.invalidateCache(ctx)

	return nil
}

func (s *service) List(ctx context.Context, openOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Job], error) {
	jobs, total, err := s.jobRepo.List(ctx, openOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Job]{}, err
	}
	return domain.NewPaginatedResponse(jobs, params.Page, params.PageSize, total), nil
}

func (s *service) ListByPoster(ctx context.Context, posterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Job], error) {
	jobs, total, err := s.jobRepo.ListByPoster(ctx, posterID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Job]{}, err
	}
	return domain.NewPaginatedResponse(jobs, params.Page, params.PageSize, total), nil
}

// Nearby lists open jobs ranked by distance from the given location.
// A radius of zero disables filtering and returns the whole ranked
// list, unresolvable cities last.
func (s *service) Nearby(ctx context.Context, location string, radiusKm float64) ([]domain.Job, error) {
	coords, err := s.resolver.Lookup(ctx, location)
	if err != nil {
		return nil, err
	}

	jobs, err := s.openJobs(ctx)
	if err != nil {
		return nil, err
	}

	sorted := geo.SortByDistance(jobs, coords.Lat, coords.Lon)
	if radiusKm > 0 {
		return geo.FilterByRadius(sorted, coords.Lat, coords.Lon, radiusKm), nil
	}
	return sorted, nil
}

func (s *service) openJobs(ctx context.Context) ([]domain.Job, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, openJobsCacheKey).Result(); err == nil {
			var jobs []domain.Job
			if json.Unmarshal([]byte(cached), &jobs) == nil {
				return jobs, nil
			}
		}
	}

	jobs, err := s.jobRepo.ListOpen(ctx, nearbyScanLimit)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(jobs); err == nil {
			_ = s.redis.Set(ctx, openJobsCacheKey, payload, openJobsCacheTTL).Err()
		}
	}

	return jobs, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, openJobsCacheKey).Err()
	}
}
