package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/repository"
	"pasar-kerja/internal/service/email"
)

var ErrJobClosed = errors.New("job is no longer open")

// reconcileBatchSize bounds one reconciliation sweep.
const reconcileBatchSize = 100

type Service interface {
	// Apply creates a PENDING application for the worker and alerts the
	// job's poster with an APPLICATION notification.
	Apply(ctx context.Context, workerID, jobID uuid.UUID) (*domain.JobApplication, error)
	HasApplied(ctx context.Context, workerID, jobID uuid.UUID) (bool, *domain.JobApplication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	ListByWorker(ctx context.Context, workerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.JobApplication], error)
	ListByJob(ctx context.Context, jobID, posterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.JobApplication], error)
	// ReconcileNotifications re-creates APPLICATION notifications whose
	// write failed after the application row was committed. Returns the
	// number of notifications created.
	ReconcileNotifications(ctx context.Context) (int, error)
	RunReconciler(ctx context.Context, interval time.Duration)
}

type service struct {
	appRepo   repository.ApplicationRepository
	jobRepo   repository.JobRepository
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	auditRepo repository.AuditLogRepository
	emailSvc  email.Service
}

func NewService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	auditRepo repository.AuditLogRepository,
	emailSvc email.Service,
) Service {
	return &service{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
		auditRepo: auditRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) Apply(ctx context.Context, workerID, jobID uuid.UUID) (*domain.JobApplication, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, domain.ErrJobNotFound
	}
	if !job.IsOpen {
		return nil, ErrJobClosed
	}

	worker, err := s.userRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil {
		return nil, errors.New("worker profile not found")
	}

	// Advisory pre-check; the unique index on (job_id, worker_id) is
	// what actually prevents duplicates under concurrent applies.
	existing, err := s.appRepo.GetByJobAndWorker(ctx, jobID, workerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyApplied
	}

	avatar := domain.DefaultAvatarURL
	if worker.AvatarURL != nil && *worker.AvatarURL != "" {
		avatar = *worker.AvatarURL
	}

	app := &domain.JobApplication{
		ID:           uuid.New(),
		JobID:        job.ID,
		WorkerID:     worker.ID,
		PosterID:     job.PosterID,
		WorkerName:   worker.FullName,
		WorkerEmail:  worker.Email,
		WorkerPhone:  worker.Phone,
		WorkerAvatar: avatar,
		JobTitle:     job.Title,
		JobPay:       job.Pay,
		JobCity:      job.City,
		JobStartDate: job.StartDate,
		Status:       domain.ApplicationPending,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     workerID,
		Action:     "APPLY",
		EntityType: "APPLICATION",
		EntityID:   app.ID,
		NewValue:   app,
	})

	// Second write of the workflow. The application row is already
	// durable, so a failure here is logged and left to the
	// reconciliation sweep rather than rolled back.
	notif := buildApplicationNotification(app, job.PeopleNeeded)
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("failed to create application notification for application %s: %v", app.ID, err)
	}

	s.emailPoster(app)

	return app, nil
}

func (s *service) emailPoster(app *domain.JobApplication) {
	if s.emailSvc == nil {
		return
	}

	go func() {
		ctx := context.Background()

		posterName := "Unknown"
		posterEmail := ""
		if poster, err := s.userRepo.GetByID(ctx, app.PosterID); err == nil && poster != nil {
			posterName = poster.FullName
			posterEmail = poster.Email
		} else {
			log.Printf("failed to resolve poster %s for application email: %v", app.PosterID, err)
		}
		if posterEmail == "" {
			return
		}

		if err := s.emailSvc.SendApplicationReceivedEmail(ctx, posterEmail, posterName, app.WorkerName, app.JobTitle); err != nil {
			log.Printf("failed to send application email to %s: %v", posterEmail, err)
		}
	}()
}

func (s *service) HasApplied(ctx context.Context, workerID, jobID uuid.UUID) (bool, *domain.JobApplication, error) {
	app, err := s.appRepo.GetByJobAndWorker(ctx, jobID, workerID)
	if err != nil {
		return false, nil, err
	}
	return app != nil, app, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

func (s *service) ListByWorker(ctx context.Context, workerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.JobApplication], error) {
	apps, total, err := s.appRepo.ListByWorker(ctx, workerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.JobApplication]{}, err
	}
	return domain.NewPaginatedResponse(apps, params.Page, params.PageSize, total), nil
}

func (s *service) ListByJob(ctx context.Context, jobID, posterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.JobApplication], error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return domain.PaginatedResponse[domain.JobApplication]{}, err
	}
	if job == nil {
		return domain.PaginatedResponse[domain.JobApplication]{}, domain.ErrJobNotFound
	}
	if job.PosterID != posterID {
		return domain.PaginatedResponse[domain.JobApplication]{}, errors.New("job belongs to another poster")
	}

	apps, total, err := s.appRepo.ListByJob(ctx, jobID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.JobApplication]{}, err
	}
	return domain.NewPaginatedResponse(apps, params.Page, params.PageSize, total), nil
}

func (s *service) ReconcileNotifications(ctx context.Context) (int, error) {
	apps, err := s.appRepo.ListMissingNotification(ctx, reconcileBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list unnotified applications: %w", err)
	}

	created := 0
	for i := range apps {
		app := &apps[i]

		peopleNeeded := 0
		if job, err := s.jobRepo.GetByID(ctx, app.JobID); err == nil && job != nil {
			peopleNeeded = job.PeopleNeeded
		}

		notif := buildApplicationNotification(app, peopleNeeded)
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			log.Printf("reconcile: failed to create notification for application %s: %v", app.ID, err)
			continue
		}
		created++
	}

	return created, nil
}

func (s *service) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			created, err := s.ReconcileNotifications(ctx)
			if err != nil {
				log.Printf("notification reconciliation failed: %v", err)
				continue
			}
			if created > 0 {
				log.Printf("notification reconciliation created %d missing notifications", created)
			}
		}
	}
}

func buildApplicationNotification(app *domain.JobApplication, peopleNeeded int) *domain.Notification {
	jobDetails, _ := json.Marshal(domain.JobSnapshot{
		JobID:        app.JobID,
		Title:        app.JobTitle,
		Pay:          app.JobPay,
		City:         app.JobCity,
		StartDate:    app.JobStartDate,
		PeopleNeeded: peopleNeeded,
	})
	workerDetails, _ := json.Marshal(domain.WorkerSnapshot{
		ID:     app.WorkerID,
		Name:   app.WorkerName,
		Email:  app.WorkerEmail,
		Phone:  app.WorkerPhone,
		Avatar: app.WorkerAvatar,
	})

	appID := app.ID
	return &domain.Notification{
		ID:            uuid.New(),
		RecipientID:   app.PosterID,
		SenderID:      app.WorkerID,
		Type:          domain.NotifApplication,
		Title:         "New Application",
		Message:       fmt.Sprintf("%s applied for %s", app.WorkerName, app.JobTitle),
		ApplicationID: &appID,
		JobDetails:    jobDetails,
		WorkerDetails: workerDetails,
	}
}
